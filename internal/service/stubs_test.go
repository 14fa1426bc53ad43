package service

import (
	"context"
	"fmt"

	"roomtrooper/internal/directory"
	"roomtrooper/internal/domain"
)

// fakeDirectory is an in-memory stand-in for the directory client.
type fakeDirectory struct {
	sitesByID   map[string]string // id -> name
	sitesByName map[string]string // name -> id

	lookupByIDCalls   int
	lookupByNameCalls int
	upsertCalls       int
	created           int

	lookupByIDErr   error
	lookupByNameErr error
	upsertErr       error
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		sitesByID:   map[string]string{},
		sitesByName: map[string]string{},
	}
}

func (f *fakeDirectory) addSite(id, name string) {
	f.sitesByID[id] = name
	f.sitesByName[name] = id
}

func (f *fakeDirectory) LookupSiteByID(_ context.Context, id string) (*domain.SiteRecord, error) {
	f.lookupByIDCalls++
	if f.lookupByIDErr != nil {
		return nil, f.lookupByIDErr
	}
	name, ok := f.sitesByID[id]
	if !ok {
		return nil, &directory.Error{
			Kind:     directory.KindNotFound,
			Op:       "getSiteById",
			Messages: []string{fmt.Sprintf("site %q not found", id)},
		}
	}
	return &domain.SiteRecord{ID: id, Name: name}, nil
}

func (f *fakeDirectory) LookupSiteByName(_ context.Context, name string) (*domain.SiteRecord, error) {
	f.lookupByNameCalls++
	if f.lookupByNameErr != nil {
		return nil, f.lookupByNameErr
	}
	id, ok := f.sitesByName[name]
	if !ok {
		return nil, nil
	}
	return &domain.SiteRecord{ID: id, Name: name}, nil
}

func (f *fakeDirectory) UpsertSite(_ context.Context, upsert domain.SiteUpsert) (*domain.SiteRecord, error) {
	f.upsertCalls++
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	id := ""
	if upsert.ID != nil {
		id = *upsert.ID
		if previous, ok := f.sitesByID[id]; ok {
			delete(f.sitesByName, previous)
		}
	} else {
		f.created++
		id = fmt.Sprintf("site-%d", f.created)
	}
	f.addSite(id, upsert.Name)
	return &domain.SiteRecord{ID: id, Name: upsert.Name}, nil
}

// fakeRooms records every mutation payload and can fail specific calls.
type fakeRooms struct {
	calls  []domain.RoomPayload
	failAt map[int]error // call index -> error
}

func newFakeRooms() *fakeRooms {
	return &fakeRooms{failAt: map[int]error{}}
}

func (f *fakeRooms) UpsertRoom(_ context.Context, payload domain.RoomPayload) (*domain.RoomRecord, error) {
	index := len(f.calls)
	f.calls = append(f.calls, payload)
	if err, ok := f.failAt[index]; ok {
		return nil, err
	}
	record := &domain.RoomRecord{ID: fmt.Sprintf("room-%d", index)}
	if payload.ID != nil {
		record.ID = *payload.ID
	}
	if payload.Name != nil {
		record.Name = *payload.Name
	}
	return record, nil
}

func transportErr(op string) error {
	return &directory.Error{Kind: directory.KindTransport, Op: op, Messages: []string{"connection refused"}}
}

func remoteErr(op string) error {
	return &directory.Error{Kind: directory.KindRemote, Op: op, Messages: []string{"constraint violation"}}
}
