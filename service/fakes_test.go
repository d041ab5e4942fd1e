package service

import (
	"context"
	"time"

	"github.com/layer-3/dropregards/core"
)

type fakeLedger struct {
	getTransaction func(ctx context.Context, signature string) (*core.Transaction, error)
}

func (f *fakeLedger) GetTransaction(ctx context.Context, signature string) (*core.Transaction, error) {
	return f.getTransaction(ctx, signature)
}

type fakeVerifier struct {
	verify       func(address, signature, message string) bool
	validAddress func(address string) bool
}

func (f *fakeVerifier) Verify(address, signature, message string) bool {
	return f.verify(address, signature, message)
}

func (f *fakeVerifier) ValidAddress(address string) bool {
	if f.validAddress == nil {
		return true
	}
	return f.validAddress(address)
}

type fakeProfileStore struct {
	findByWallet   func(ctx context.Context, address string) (*core.Profile, error)
	findByUsername func(ctx context.Context, username string) (*core.Profile, error)
	create         func(ctx context.Context, profile *core.Profile) error
	update         func(ctx context.Context, address string, update core.ProfileUpdate) (*core.Profile, error)
	usernameExists func(ctx context.Context, username string) (bool, error)
}

func (f *fakeProfileStore) FindByWallet(ctx context.Context, address string) (*core.Profile, error) {
	if f.findByWallet == nil {
		return nil, core.ErrNotFound
	}
	return f.findByWallet(ctx, address)
}

func (f *fakeProfileStore) FindByUsername(ctx context.Context, username string) (*core.Profile, error) {
	if f.findByUsername == nil {
		return nil, core.ErrNotFound
	}
	return f.findByUsername(ctx, username)
}

func (f *fakeProfileStore) Create(ctx context.Context, profile *core.Profile) error {
	return f.create(ctx, profile)
}

func (f *fakeProfileStore) Update(ctx context.Context, address string, update core.ProfileUpdate) (*core.Profile, error) {
	return f.update(ctx, address, update)
}

func (f *fakeProfileStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	if f.usernameExists == nil {
		return false, nil
	}
	return f.usernameExists(ctx, username)
}

type fakeRegardStore struct {
	create          func(ctx context.Context, regard *core.Regard) error
	listByRecipient func(ctx context.Context, address string, limit, offset int) ([]core.Regard, error)
	stats           func(ctx context.Context, address string) (*core.RegardStats, error)
}

func (f *fakeRegardStore) Create(ctx context.Context, regard *core.Regard) error {
	return f.create(ctx, regard)
}

func (f *fakeRegardStore) ListByRecipient(ctx context.Context, address string, limit, offset int) ([]core.Regard, error) {
	return f.listByRecipient(ctx, address, limit, offset)
}

func (f *fakeRegardStore) Stats(ctx context.Context, address string) (*core.RegardStats, error) {
	return f.stats(ctx, address)
}

type fakePublisher struct {
	published []*core.Regard
	err       error
}

func (f *fakePublisher) PublishRegardSent(ctx context.Context, regard *core.Regard) error {
	f.published = append(f.published, regard)
	return f.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
