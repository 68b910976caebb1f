package storage

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"everywhere_bot/internal/logger"
	"everywhere_bot/pkg"
)

// LongtermMemory is the append-only episodic log of significant exchanges.
// Entries are never updated or removed; insertion order is chronological order.
type LongtermMemory struct {
	store   Store
	key     string
	now     func() time.Time
	entries []pkg.MemoryEntry
}

// OpenLongtermMemory loads the stored log. Absent or malformed records start an empty log;
// on a backend error the empty log is returned together with the error.
func OpenLongtermMemory(ctx context.Context, store Store, keys Keyspace, now func() time.Time) (*LongtermMemory, error) {
	m := &LongtermMemory{
		store:   store,
		key:     keys.Key(EntityMemories),
		now:     now,
		entries: []pkg.MemoryEntry{},
	}

	var entries []pkg.MemoryEntry
	found, err := loadRecord(ctx, store, m.key, &entries)
	if err != nil {
		if errors.Is(err, ErrMalformed) {
			logger.Warn().Err(err).Msg("Discarding malformed longterm memory, starting fresh")
			return m, nil
		}
		return m, err
	}
	if found && entries != nil {
		m.entries = entries
	}
	return m, nil
}

// Add appends an entry stamped with the current time and persists the log.
// The entry stays in memory even when persisting fails.
func (m *LongtermMemory) Add(ctx context.Context, topic pkg.Topic, content string, sentiment pkg.Emotion) (pkg.MemoryEntry, error) {
	entry := pkg.MemoryEntry{
		Topic:     topic,
		Content:   content,
		Sentiment: sentiment,
		Timestamp: m.now(),
	}
	m.entries = append(m.entries, entry)

	if err := saveRecord(ctx, m.store, m.key, m.entries); err != nil {
		return entry, err
	}

	logger.Debug().
		Str("topic", string(topic)).
		Int("entries", len(m.entries)).
		Msg("Saved to longterm memory")
	return entry, nil
}

// Len returns the number of entries
func (m *LongtermMemory) Len() int {
	return len(m.entries)
}

// Entries returns a copy of the log in insertion order
func (m *LongtermMemory) Entries() []pkg.MemoryEntry {
	out := make([]pkg.MemoryEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Recent returns the last n entries in insertion order
func (m *LongtermMemory) Recent(n int) []pkg.MemoryEntry {
	if n <= 0 {
		return []pkg.MemoryEntry{}
	}
	start := len(m.entries) - n
	if start < 0 {
		start = 0
	}
	out := make([]pkg.MemoryEntry, len(m.entries)-start)
	copy(out, m.entries[start:])
	return out
}

// ByTopic returns the first entry tagged with topic. Untagged turns never match.
func (m *LongtermMemory) ByTopic(topic pkg.Topic) (pkg.MemoryEntry, bool) {
	if topic == pkg.TopicNone {
		return pkg.MemoryEntry{}, false
	}
	for _, entry := range m.entries {
		if entry.Topic == topic {
			return entry, true
		}
	}
	return pkg.MemoryEntry{}, false
}

// Related returns the first entry with the same topic or whose content contains one of keywords
func (m *LongtermMemory) Related(topic pkg.Topic, keywords []string) (pkg.MemoryEntry, bool) {
	for _, entry := range m.entries {
		if topic != pkg.TopicNone && entry.Topic == topic {
			return entry, true
		}
		for _, keyword := range keywords {
			if keyword != "" && strings.Contains(entry.Content, keyword) {
				return entry, true
			}
		}
	}
	return pkg.MemoryEntry{}, false
}

// MemoryStats summarizes the log
type MemoryStats struct {
	TotalEntries int       `json:"total_entries"`
	OldestEntry  time.Time `json:"oldest_entry"`
	NewestEntry  time.Time `json:"newest_entry"`
	TopTopics    []string  `json:"top_topics"`
}

// Stats returns statistics over the whole log
func (m *LongtermMemory) Stats() MemoryStats {
	stats := MemoryStats{TopTopics: []string{}}
	if len(m.entries) == 0 {
		return stats
	}

	stats.TotalEntries = len(m.entries)
	stats.OldestEntry = m.entries[0].Timestamp
	stats.NewestEntry = m.entries[0].Timestamp

	topicCounts := make(map[string]int)
	for _, entry := range m.entries {
		if entry.Topic != pkg.TopicNone {
			topicCounts[string(entry.Topic)]++
		}
		if entry.Timestamp.Before(stats.OldestEntry) {
			stats.OldestEntry = entry.Timestamp
		}
		if entry.Timestamp.After(stats.NewestEntry) {
			stats.NewestEntry = entry.Timestamp
		}
	}

	stats.TopTopics = topTopics(topicCounts, 5)
	return stats
}

// topTopics orders by count descending, then name, and keeps at most limit
func topTopics(counts map[string]int, limit int) []string {
	topics := make([]string, 0, len(counts))
	for topic := range counts {
		topics = append(topics, topic)
	}
	sort.Slice(topics, func(i, j int) bool {
		if counts[topics[i]] != counts[topics[j]] {
			return counts[topics[i]] > counts[topics[j]]
		}
		return topics[i] < topics[j]
	})
	if len(topics) > limit {
		topics = topics[:limit]
	}
	return topics
}
