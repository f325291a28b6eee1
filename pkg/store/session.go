package store

import "time"

// Turn is one recorded exchange. Turns are recorded unconditionally, handled
// failures included, so history stays complete for debugging.
type Turn struct {
	Utterance string    `json:"utterance"`
	Intent    string    `json:"intent"`
	ResultRef []string  `json:"result_ref,omitempty"`
	At        time.Time `json:"at"`
}

// Session is the per-conversation dialogue state. It is owned by the session
// manager; nothing else mutates it. LastResults holds the item ids of the
// most recent code-search turn, in rank order, and is replaced wholesale when
// a new result set is produced.
type Session struct {
	ID           string    `json:"id"`
	History      []Turn    `json:"history"`
	LastResults  []string  `json:"last_results"`
	CreatedAt    time.Time `json:"created_at"`
	LastActiveAt time.Time `json:"last_active_at"`
}

// Clone returns a deep copy safe to read outside the session lock.
func (s *Session) Clone() *Session {
	c := *s
	c.History = make([]Turn, len(s.History))
	copy(c.History, s.History)
	c.LastResults = make([]string, len(s.LastResults))
	copy(c.LastResults, s.LastResults)
	return &c
}
