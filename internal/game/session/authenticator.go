// Package session implements the two-tier session proof scheme: a static
// deployment-wide proof plus a per-trainer activity token that rotates on
// every successful verification.
package session

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ptaonline/tabletop/internal/game/entity"
)

// ErrUnauthenticated is returned when session verification fails for any
// reason: unknown trainer, bad proof, malformed or stale activity token, or
// a lost rotation race. Verification failure flips the trainer offline.
var ErrUnauthenticated = errors.New("unauthenticated")

// Proofs carries the two opaque strings a client presents on every
// authenticated action. Session is identical for all sessions of a
// deployment (it proves a completed login against this server, not an
// identity); Activity proves the trainer's current session.
type Proofs struct {
	Session  string
	Activity string
}

// Store is the trainer persistence surface the authenticator requires.
// The boolean results separate domain absence from infrastructure failure:
// infrastructure errors propagate unchanged, absence fails closed.
type Store interface {
	// TrainerByID returns (trainer, true, nil) when the id resolves and
	// (nil, false, nil) when it does not.
	TrainerByID(ctx context.Context, id string) (*entity.Trainer, bool, error)
	// SetTrainerOnline updates the trainer's online flag.
	SetTrainerOnline(ctx context.Context, id string, online bool) error
	// SetActivityToken unconditionally stores a new activity token.
	SetActivityToken(ctx context.Context, id, token string) error
	// SwapActivityToken replaces the stored token only if it still equals
	// old, reporting whether the swap happened. This is the single-writer
	// mechanism for rotation; it must be atomic in the store, not guarded
	// by an in-process lock, since multiple instances share the store.
	SwapActivityToken(ctx context.Context, id, old, next string) (bool, error)
}

// Authenticator issues, verifies, and rotates session proofs.
type Authenticator struct {
	store  Store
	proof  string
	logger *zap.Logger
}

// NewAuthenticator creates an Authenticator over the given store.
// secret is the server-wide session secret from configuration.
//
// Precondition: store and logger must be non-nil; secret must be non-empty.
func NewAuthenticator(store Store, secret string, logger *zap.Logger) *Authenticator {
	sum := sha256.Sum256([]byte(secret))
	return &Authenticator{
		store:  store,
		proof:  hex.EncodeToString(sum[:]),
		logger: logger,
	}
}

// SessionProof returns the static session proof. It is a deterministic hash
// of the server secret and therefore identical across all sessions; a known
// weak point of the scheme, kept for wire compatibility.
func (a *Authenticator) SessionProof() string {
	return a.proof
}

// Login starts a session for a trainer whose password has already been
// verified by the caller. It generates a fresh activity token, persists it,
// flips the trainer online, and returns both proofs.
//
// Postcondition: On success the returned Proofs are valid for the next
// Verify call and the stored trainer is online with the new token.
func (a *Authenticator) Login(ctx context.Context, trainerID string) (Proofs, error) {
	token := uuid.NewString()
	if err := a.store.SetActivityToken(ctx, trainerID, token); err != nil {
		return Proofs{}, fmt.Errorf("storing activity token: %w", err)
	}
	if err := a.store.SetTrainerOnline(ctx, trainerID, true); err != nil {
		return Proofs{}, fmt.Errorf("marking trainer online: %w", err)
	}
	a.logger.Info("session started", zap.String("trainer_id", trainerID))
	return Proofs{Session: a.proof, Activity: token}, nil
}

// Verify checks the supplied proofs for the claimed trainer and, on
// success, rotates the activity token. The rotated token is returned and
// must be used by the client on its next call; the presented token is dead
// either way.
//
// Postcondition: Returns the rotated Proofs, or ErrUnauthenticated with the
// trainer flipped offline. Store infrastructure errors propagate unchanged.
func (a *Authenticator) Verify(ctx context.Context, trainerID string, p Proofs) (Proofs, error) {
	trainer, found, err := a.store.TrainerByID(ctx, trainerID)
	if err != nil {
		return Proofs{}, fmt.Errorf("loading trainer: %w", err)
	}
	if !found {
		a.logger.Warn("verify for unknown trainer", zap.String("trainer_id", trainerID))
		return Proofs{}, ErrUnauthenticated
	}

	if subtle.ConstantTimeCompare([]byte(p.Session), []byte(a.proof)) != 1 {
		return Proofs{}, a.failClosed(ctx, trainerID, "session proof mismatch")
	}
	if uuid.Validate(p.Activity) != nil {
		return Proofs{}, a.failClosed(ctx, trainerID, "malformed activity token")
	}
	if subtle.ConstantTimeCompare([]byte(p.Activity), []byte(trainer.ActivityToken)) != 1 {
		return Proofs{}, a.failClosed(ctx, trainerID, "stale activity token")
	}

	next := uuid.NewString()
	swapped, err := a.store.SwapActivityToken(ctx, trainerID, p.Activity, next)
	if err != nil {
		return Proofs{}, fmt.Errorf("rotating activity token: %w", err)
	}
	if !swapped {
		// Another verify rotated first; this caller's token is already dead.
		return Proofs{}, a.failClosed(ctx, trainerID, "lost rotation race")
	}

	return Proofs{Session: p.Session, Activity: next}, nil
}

// Logout flips the trainer offline. The activity token is deliberately left
// in place: an inert session must still be rejected on the offline flag
// rather than silently re-authenticating.
func (a *Authenticator) Logout(ctx context.Context, trainerID string) error {
	if err := a.store.SetTrainerOnline(ctx, trainerID, false); err != nil {
		return fmt.Errorf("marking trainer offline: %w", err)
	}
	a.logger.Info("session ended", zap.String("trainer_id", trainerID))
	return nil
}

// failClosed flips the trainer offline and returns ErrUnauthenticated.
func (a *Authenticator) failClosed(ctx context.Context, trainerID, reason string) error {
	a.logger.Warn("verification failed",
		zap.String("trainer_id", trainerID),
		zap.String("reason", reason),
	)
	if err := a.store.SetTrainerOnline(ctx, trainerID, false); err != nil {
		a.logger.Error("flipping trainer offline",
			zap.String("trainer_id", trainerID),
			zap.Error(err),
		)
	}
	return ErrUnauthenticated
}
