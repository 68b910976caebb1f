package render

import (
	"bytes"
	"sync"
	"testing"

	"everywhere_bot/pkg"

	"github.com/stretchr/testify/assert"
)

func TestConsolePlain(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf, false)

	console.Render(pkg.Emission{Kind: pkg.EmissionPrimary, Text: "Hello!"})
	console.Render(pkg.Emission{Kind: pkg.EmissionFollowUp, Text: "How are you?"})
	console.Prompt()

	assert.Equal(t, "Everywhere: Hello!\nEverywhere: How are you?\n> ", buf.String())
}

func TestConsoleColored(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf, true)

	console.Render(pkg.Emission{Kind: pkg.EmissionNameRequest, Text: "Name?"})

	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "Name?")
}

func TestConsoleConcurrentRender(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf, false)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			console.Render(pkg.Emission{Kind: pkg.EmissionSystem, Text: "hi"})
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, bytes.Count(buf.Bytes(), []byte("Everywhere: hi\n")))
}
