package battle

import (
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/udisondev/legendarena/internal/model"
)

// CreatureSummary is a creature as stored with a battle record.
type CreatureSummary struct {
	Name     string          `json:"name"`
	Elements []model.Element `json:"elements"`
	Rating   int             `json:"rating"`
	Level    int             `json:"level"`
	Survived bool            `json:"survived"`
}

// Record is the persisted outcome of a finished battle.
type Record struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Outcome    string
	Turns      int
	Team1      []CreatureSummary
	Team2      []CreatureSummary
	Reward     model.Reward
	LogDigest  []byte // blake2b-256 of the event log, one event per line
}

// NewRecord builds the record of a finished battle.
func NewRecord(b *Battle) Record {
	return Record{
		ID:         b.id,
		StartedAt:  b.startedAt,
		FinishedAt: b.finishedAt,
		Outcome:    b.State(),
		Turns:      b.turn,
		Team1:      b.summarize(b.team1),
		Team2:      b.summarize(b.team2),
		Reward:     b.reward,
		LogDigest:  b.Digest(),
	}
}

// Digest hashes the event log. Two battles with the same log have the same digest.
func (b *Battle) Digest() []byte {
	var sb strings.Builder
	for _, e := range b.events {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	sum := blake2b.Sum256([]byte(sb.String()))
	return sum[:]
}

func (b *Battle) summarize(t *model.Team) []CreatureSummary {
	members := t.Members()
	out := make([]CreatureSummary, 0, len(members))
	for _, c := range members {
		out = append(out, CreatureSummary{
			Name:     c.Name(),
			Elements: c.Elements(),
			Rating:   c.Rating(),
			Level:    c.Level(),
			Survived: b.survivors[c.ID()],
		})
	}
	return out
}
