package core

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wishwall-server/internal/secret"
	"github.com/vovakirdan/wishwall-server/internal/store"
)

// maxInsertAttempts bounds id regeneration when an insert hits an id
// collision.
const maxInsertAttempts = 3

// Service coordinates the wish store and the broadcast registry: every
// mutation is committed to the store first and broadcast to all live
// connections after, so no client ever sees an event for state a full
// read cannot confirm.
type Service struct {
	store    store.Store
	registry *Registry
	log      *zerolog.Logger
}

// NewService builds the coordinator on top of a store and a registry.
func NewService(st store.Store, registry *Registry, logger *zerolog.Logger) *Service {
	return &Service{
		store:    st,
		registry: registry,
		log:      logger,
	}
}

// ListWishes returns every wish, newest first, as projections. The
// store is queried fresh on every call.
func (s *Service) ListWishes(ctx context.Context) ([]View, error) {
	wishes, err := s.store.ListAll(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list wishes")
		return nil, ErrStoreUnavailable
	}

	views := make([]View, 0, len(wishes))
	for _, w := range wishes {
		views = append(views, wishView(w))
	}
	return views, nil
}

// AddWish stores a new wish and, once the insert has committed,
// broadcasts it to all live connections. The caller only sees success
// if the insert committed; broadcast delivery failures stay inside the
// registry.
func (s *Service) AddWish(ctx context.Context, name, message, password string) (View, error) {
	digest, err := secret.Digest(password)
	if err != nil {
		s.log.Error().Err(err).Msg("digest password")
		return View{}, ErrStoreUnavailable
	}

	wish := &store.Wish{
		Name:           name,
		Message:        message,
		PasswordDigest: digest,
		CreatedAt:      time.Now(),
	}

	inserted := false
	for attempt := 0; attempt < maxInsertAttempts && !inserted; attempt++ {
		wish.ID = uuid.NewString()

		switch err := s.store.Insert(ctx, wish); {
		case err == nil:
			inserted = true
		case errors.Is(err, store.ErrConflict):
			s.log.Warn().Str("wish_id", wish.ID).Msg("id collision on insert, regenerating")
		default:
			s.log.Error().Err(err).Msg("insert wish")
			return View{}, ErrStoreUnavailable
		}
	}
	if !inserted {
		s.log.Error().Int("attempts", maxInsertAttempts).Msg("insert retries exhausted")
		return View{}, ErrStoreUnavailable
	}

	view := wishView(wish)
	s.registry.Broadcast(NewWishEvent(view))
	return view, nil
}

// DeleteWish removes the wish with the given id if the password matches
// its stored digest, then broadcasts the deletion.
func (s *Service) DeleteWish(ctx context.Context, id, password string) error {
	wish, err := s.store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		s.log.Error().Err(err).Str("wish_id", id).Msg("find wish")
		return ErrStoreUnavailable
	}

	if !secret.Verify(wish.PasswordDigest, password) {
		return ErrUnauthorized
	}

	switch err := s.store.DeleteByID(ctx, id); {
	case err == nil:
	case errors.Is(err, store.ErrNotFound):
		// A concurrent delete won the race; the record is gone either way.
		return ErrNotFound
	default:
		s.log.Error().Err(err).Str("wish_id", id).Msg("delete wish")
		return ErrStoreUnavailable
	}

	s.registry.Broadcast(DeleteWishEvent(id))
	return nil
}
