package user

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/neurobridge-disguise/internal/data/repos/testutil"
	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/platform/dbctx"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	username := "userrepo-" + uuid.NewString()[:8]
	created, err := repo.Create(dbc, []*types.User{
		{
			Username:  username,
			Email:     "userrepo@example.com",
			FirstName: "A",
			LastName:  "B",
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 || created[0].ID == uuid.Nil {
		t.Fatalf("Create: unexpected result: %+v", created)
	}

	got, err := repo.GetByID(dbc, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Username != username || got.Auth != types.AuthManual {
		t.Fatalf("GetByID: unexpected result: %+v", got)
	}

	byName, err := repo.GetByUsername(dbc, username)
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if byName == nil || byName.ID != created[0].ID {
		t.Fatalf("GetByUsername: unexpected result: %+v", byName)
	}

	exists, err := repo.UsernameExists(dbc, "does-not-exist")
	if err != nil {
		t.Fatalf("UsernameExists (missing): %v", err)
	}
	if exists {
		t.Fatalf("UsernameExists (missing): expected false")
	}

	if err := repo.SetAuth(dbc, created[0].ID, types.AuthDisguise); err != nil {
		t.Fatalf("SetAuth: %v", err)
	}
	if err := repo.SetSiteAdmin(dbc, created[0].ID, true); err != nil {
		t.Fatalf("SetSiteAdmin: %v", err)
	}
	if err := repo.UpdateName(dbc, created[0].ID, "Red", "Fox"); err != nil {
		t.Fatalf("UpdateName: %v", err)
	}
	got, err = repo.GetByID(dbc, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID after updates: %v", err)
	}
	if !got.IsDisguise() || !got.SiteAdmin || got.FirstName != "Red" || got.LastName != "Fox" {
		t.Fatalf("updates not applied: %+v", got)
	}

	missing, err := repo.GetByID(dbc, uuid.New())
	if err != nil {
		t.Fatalf("GetByID (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByID (missing): expected nil, got %+v", missing)
	}
}
