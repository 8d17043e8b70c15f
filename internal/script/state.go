// Package script holds the in-memory state of one uploaded script: its ordered
// phrases, its actions and the TF-IDF corpus built over them.
//
// State publishes immutable snapshots. Matching reads one snapshot for the
// whole request while Update builds the next revision and swaps it in, so a
// query never sees a half-rebuilt corpus or action set.
package script

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AndrewOch/ClapperRoughCutBackend/index"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/errors"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/phonetic"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/tfidf"
	"github.com/AndrewOch/ClapperRoughCutBackend/model"
)

// Snapshot is one revision of a script. It must not be modified.
type Snapshot struct {
	ScriptID  string
	Revision  string
	UpdatedAt time.Time
	Phrases   []*model.Phrase
	Actions   []model.Action
	Corpus    *tfidf.Corpus
	Index     *index.PhoneticIndex
}

// Info summarizes the snapshot.
func (s *Snapshot) Info() model.ScriptInfo {
	return model.ScriptInfo{
		ScriptID:    s.ScriptID,
		Revision:    s.Revision,
		PhraseCount: len(s.Phrases),
		ActionCount: len(s.Actions),
	}
}

// Definition returns the effective definition of the snapshot: the phrases as
// uploaded and the actions that survived reconciliation.
func (s *Snapshot) Definition() model.ScriptDefinition {
	def := model.ScriptDefinition{
		ScriptID: s.ScriptID,
		Phrases:  make([]model.PhraseDefinition, len(s.Phrases)),
		Actions:  make([]model.ActionDefinition, len(s.Actions)),
	}
	for i, p := range s.Phrases {
		def.Phrases[i] = p.Definition()
	}
	for i, a := range s.Actions {
		def.Actions[i] = a.ActionDefinition
	}
	return def
}

// UpdateSummary counts what a reconciliation did to the action set.
type UpdateSummary struct {
	Added    int `json:"added"`
	Replaced int `json:"replaced"`
	Kept     int `json:"kept"`
	Deleted  int `json:"deleted"`
}

// Options configures how snapshots are derived.
type Options struct {
	Encoder phonetic.Encoder
	// Reserved reports taxonomy tags excluded from the corpus. Nil excludes nothing.
	Reserved func(tag string) bool
}

// State is the current revision of a script plus the means to reconcile it.
type State struct {
	opts Options

	writeMu sync.Mutex // serializes Update
	mu      sync.RWMutex
	current *Snapshot
}

// New validates def and builds the first revision.
func New(def model.ScriptDefinition, opts Options) (*State, error) {
	if opts.Encoder == nil {
		return nil, fmt.Errorf("script state requires a phonetic encoder")
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	actions := make([]model.Action, 0, len(def.Actions))
	for _, ad := range def.Actions {
		a, err := model.NewAction(ad)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}

	snap, err := build(def.ScriptID, def.Phrases, actions, opts)
	if err != nil {
		return nil, err
	}
	return &State{opts: opts, current: snap}, nil
}

// Snapshot returns the current revision.
func (s *State) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update reconciles the state with a full script upload. Phrases are replaced
// wholesale. An incoming action replaces the existing one with the same id
// only if its last_update is strictly newer; unknown ids are added and
// existing ids missing from def are deleted. The corpus is rebuilt in full.
func (s *State) Update(def model.ScriptDefinition) (UpdateSummary, error) {
	if err := def.Validate(); err != nil {
		return UpdateSummary{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	prev := s.Snapshot()
	if def.ScriptID != prev.ScriptID {
		return UpdateSummary{}, errors.NewValidationError("script_id",
			fmt.Sprintf("script_id '%s' does not match '%s'", def.ScriptID, prev.ScriptID))
	}

	actions, summary, err := reconcile(prev.Actions, def.Actions)
	if err != nil {
		return UpdateSummary{}, err
	}

	snap, err := build(def.ScriptID, def.Phrases, actions, s.opts)
	if err != nil {
		return UpdateSummary{}, err
	}

	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()
	return summary, nil
}

// reconcile applies the full-snapshot update rules. Surviving actions keep
// their previous order and new actions follow in incoming order.
func reconcile(existing []model.Action, incoming []model.ActionDefinition) ([]model.Action, UpdateSummary, error) {
	var summary UpdateSummary

	byID := make(map[string]model.ActionDefinition, len(incoming))
	for _, d := range incoming {
		byID[d.ActionID] = d
	}

	known := make(map[string]struct{}, len(existing))
	out := make([]model.Action, 0, len(incoming))
	for _, a := range existing {
		known[a.ActionID] = struct{}{}
		next, ok := byID[a.ActionID]
		if !ok {
			summary.Deleted++
			continue
		}
		if !next.NewerThan(a.ActionDefinition) {
			summary.Kept++
			out = append(out, a)
			continue
		}
		replaced, err := model.NewAction(next)
		if err != nil {
			return nil, UpdateSummary{}, err
		}
		summary.Replaced++
		out = append(out, replaced)
	}

	for _, d := range incoming {
		if _, ok := known[d.ActionID]; ok {
			continue
		}
		added, err := model.NewAction(d)
		if err != nil {
			return nil, UpdateSummary{}, err
		}
		summary.Added++
		out = append(out, added)
	}
	return out, summary, nil
}

// build derives phrases, the corpus, action vectors and the phonetic index.
// actions is owned by the new snapshot and its vectors are overwritten.
func build(scriptID string, phraseDefs []model.PhraseDefinition, actions []model.Action, opts Options) (*Snapshot, error) {
	phrases := make([]*model.Phrase, 0, len(phraseDefs))
	for _, pd := range phraseDefs {
		p, err := model.NewPhrase(pd, opts.Encoder)
		if err != nil {
			return nil, err
		}
		phrases = append(phrases, p)
	}

	docs := make([][]string, len(actions))
	for i, a := range actions {
		docs[i] = a.Classes
	}
	corpus := tfidf.BuildCorpus(docs, opts.Reserved)
	for i := range actions {
		actions[i].TFIDF = corpus.Vectorize(actions[i].Classes)
	}

	return &Snapshot{
		ScriptID:  scriptID,
		Revision:  uuid.NewString(),
		UpdatedAt: time.Now(),
		Phrases:   phrases,
		Actions:   actions,
		Corpus:    corpus,
		Index:     index.NewPhoneticIndex(phrases),
	}, nil
}
