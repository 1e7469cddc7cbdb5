package state

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	apperrors "github.com/pyrelease/relgate/internal/errors"
	"github.com/pyrelease/relgate/internal/fsutil"
)

// Store persists a State at a fixed path.
type Store struct {
	Path     string
	validate *validator.Validate
}

// NewStore creates a Store for the given state file.
func NewStore(path string) *Store {
	return &Store{Path: path, validate: validator.New()}
}

// Exists reports whether a state file is present.
func (st *Store) Exists() bool {
	_, err := os.Stat(st.Path)
	return err == nil
}

// Load reads and validates the state file.
func (st *Store) Load() (State, error) {
	data, err := os.ReadFile(st.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, apperrors.StateFileNotFound(st.Path)
		}
		return State{}, fmt.Errorf("reading release state: %w", err)
	}

	var s State
	if err := yaml.Unmarshal(data, &s); err != nil {
		return State{}, apperrors.NewConfigError(
			fmt.Sprintf("release state %s is not valid: %v", st.Path, err),
			"Fix the file by hand or run 'relgate state discard' and start over",
		).WithCause(err)
	}
	if s.SchemaVersion != SchemaVersion {
		return State{}, apperrors.NewConfigError(
			fmt.Sprintf("release state %s has schema_version %d, this relgate reads %d", st.Path, s.SchemaVersion, SchemaVersion),
			"Use the relgate version that wrote the file, or discard it",
		)
	}
	if err := st.check(s); err != nil {
		return State{}, err
	}
	return s, nil
}

// Save writes s to disk. When a state file already exists, its release and
// git_repo must match s; replacing them requires Discard first.
func (st *Store) Save(s State) error {
	if err := st.check(s); err != nil {
		return err
	}

	if st.Exists() {
		existing, err := st.Load()
		if err != nil {
			return err
		}
		if existing.Release != s.Release {
			return apperrors.StateConflict(st.Path, "release", existing.Release.String(), s.Release.String())
		}
		if existing.GitRepo != s.GitRepo {
			return apperrors.StateConflict(st.Path, "git_repo", existing.GitRepo, s.GitRepo)
		}
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling release state: %w", err)
	}
	if err := fsutil.WriteFileAtomic(st.Path, data, 0o644); err != nil {
		return fmt.Errorf("writing release state: %w", err)
	}
	return nil
}

// Discard removes the state file. A missing file is not an error.
func (st *Store) Discard() error {
	if err := os.Remove(st.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing release state: %w", err)
	}
	return nil
}

func (st *Store) check(s State) error {
	if s.Release.IsZero() {
		return apperrors.NewConfigError(fmt.Sprintf("release state %s has no release tag", st.Path))
	}
	if err := st.validate.Struct(s); err != nil {
		return apperrors.NewConfigError(
			fmt.Sprintf("release state %s is not valid: %v", st.Path, err),
		).WithCause(err)
	}
	return nil
}
