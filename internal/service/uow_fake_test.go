package service

import (
	"context"
	"sync"

	"household-sync-be/internal/entity"
	"household-sync-be/internal/repository/contract"
	"household-sync-be/internal/repository/specification"
	"household-sync-be/internal/repository/unitofwork"
)

// memStore backs the fake unit of work. Transactions are not simulated.
type memStore struct {
	mu     sync.Mutex
	groups map[string]entity.Group
	subs   map[string]entity.DeviceSubscription
}

func newMemStore() *memStore {
	return &memStore{
		groups: make(map[string]entity.Group),
		subs:   make(map[string]entity.DeviceSubscription),
	}
}

func (s *memStore) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memUow{store: s}
}

type memUow struct {
	store *memStore
}

func (u *memUow) Begin(ctx context.Context) error { return nil }
func (u *memUow) Commit() error                    { return nil }
func (u *memUow) Rollback() error                  { return nil }

func (u *memUow) GroupRepository() contract.GroupRepository {
	return memGroupRepo{u.store}
}

func (u *memUow) DeviceSubscriptionRepository() contract.DeviceSubscriptionRepository {
	return memSubRepo{u.store}
}

type memGroupRepo struct{ s *memStore }

func (r memGroupRepo) Upsert(ctx context.Context, group *entity.Group) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.groups[group.Id] = *group
	return nil
}

func (r memGroupRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.groups, id)
	return nil
}

func (r memGroupRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			if g, found := r.s.groups[byID.ID.(string)]; found {
				return &g, nil
			}
		}
	}
	return nil, nil
}

type memSubRepo struct{ s *memStore }

func (r memSubRepo) Create(ctx context.Context, sub *entity.DeviceSubscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := sub.DeviceId + ":" + sub.GroupId
	if _, exists := r.s.subs[key]; !exists {
		r.s.subs[key] = *sub
	}
	return nil
}

func (r memSubRepo) Delete(ctx context.Context, groupId, deviceId string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.subs, deviceId+":"+groupId)
	return nil
}

func (r memSubRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DeviceSubscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.DeviceSubscription, 0, len(r.s.subs))
	for _, sub := range r.s.subs {
		sub := sub
		out = append(out, &sub)
	}
	return out, nil
}
