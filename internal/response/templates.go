package response

import "everywhere_bot/pkg"

// Template tables. {name} is replaced with the display name, {part} with the time of day.

var empatheticTemplates = []string{
	"I can sense that you're feeling down, {name}. Would you like to talk about it?",
	"I'm here for you, {name}. Sometimes just sharing our feelings can help.",
	"That sounds challenging. Remember, I'm always here to listen and support you.",
}

var interestTemplates = []string{
	"That's fascinating! I remember you mentioned being interested in this. Tell me more!",
	"I love how passionate you are about this topic. What's new in this area?",
	"It's great to discuss this with you since I know it's one of your interests!",
}

var personalTemplates = []string{
	"I'm Everywhere, your AI friend! I love learning new things and helping others.",
	"I'm here to be helpful and friendly! What would you like to know about me?",
}

var intentTemplates = map[pkg.Intent][]string{
	pkg.IntentGreeting: {
		"Hi {name}! It's always great to see you!",
		"Hello there! How's your {part} going?",
	},
	pkg.IntentFarewell: {
		"Take care, {name}! Looking forward to our next chat!",
		"Goodbye! Remember, I'm always here when you need me.",
	},
	pkg.IntentGratitude: {
		"You're welcome, {name}! I'm happy to help!",
		"Anytime! That's what friends are for!",
	},
	pkg.IntentHelp: {
		"I'll do my best to help you with that, {name}. What specifically do you need?",
		"I'm here to assist! Could you tell me more about what you need?",
	},
}

const (
	listeningTemplate     = "I'm here and listening, {name}. Tell me more!"
	questionFallback      = "That's an interesting question about %s. Let's explore it together!"
	questionFallbackBare  = "That's an interesting question. Let's explore it together!"
	relatedMemoryPrefix   = "Based on our previous conversation about %s, "
	memoryCallbackFollow  = "This reminds me of when we talked about %s before. Have your thoughts on that changed?"
	interestFollowUp      = "By the way, have you done anything interesting related to %s lately?"
	memoryRecallTemplate  = "Of course I remember! We've talked about %s. Which one would you like to pick back up?"
	memoryRecallEmpty     = "We haven't talked about much yet, but I'll remember the things you share with me!"
	memoryRecallUntagged  = "I remember you told me \"%s\". Want to talk more about it?"
	memoryRecallLookback  = 3
	defaultDisplayName    = "friend"
	capabilitiesTrigger   = "what can you do"
	jokeTrigger           = "joke"
	capabilitiesTemplate  = `I can help you with many things! Here are some examples:

🗣️ Chat and Conversation
- Friendly discussions on various topics
- Answer questions and provide information
- Share interesting facts and jokes

📝 Task Management
- Help organize your thoughts
- Set reminders and track tasks
- Take and manage notes

🎯 Personal Assistant
- Provide suggestions and advice
- Help with decision making
- Offer emotional support

Just let me know what you need! 😊`
)

var factTriggers = []string{"fun fact", "random fact", "tell me a fact"}

type sharingTemplate struct {
	message  string
	followUp string
}

var (
	sharingPositive = sharingTemplate{
		message:  "I'm so happy to hear that, {name}! It's wonderful that you're feeling this way.",
		followUp: "What made today particularly special?",
	}
	sharingNegative = sharingTemplate{
		message:  "I hear you, {name}. It's okay to feel this way, and I'm here to listen.",
		followUp: "Would you like to talk more about what's bothering you?",
	}
	sharingFuture = sharingTemplate{
		message:  "It's exciting to hear about your plans! I'll remember these goals and check in with you about them.",
		followUp: "What's your first step towards this?",
	}
	sharingDefault = sharingTemplate{
		message:  "Thank you for sharing that with me, {name}. It helps me understand you better.",
		followUp: "How do you feel about this?",
	}
)

var jokes = []string{
	"Why don't programmers like nature? It has too many bugs! 🐛",
	"What did the AI say to the other AI? 'Byte me!' 😄",
	"Why did the chatbot go to therapy? It had too many processing issues! 🤖",
	"What's a computer's favorite snack? Microchips! 🍪",
	"Why did the digital clock go to the doctor? It was having second thoughts! ⏰",
}

var funFacts = []string{
	"The first computer mouse was made of wood! 🖱️",
	"The first website is still online! It was published in 1991. 🌐",
	"The term 'bug' in computing came from an actual moth found in a computer in 1947! 🦋",
	"The first computer programmer was Ada Lovelace, a woman! 👩‍💻",
	"The average person spends 6 years of their life dreaming! 💭",
}
