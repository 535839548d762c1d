package services

import (
	"context"
	"testing"

	apperrors "pousada/errors"
	"pousada/models"
)

func strPtr(s string) *string { return &s }

func TestClientDocumentRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	clients := NewClientService(f.db)

	c, err := clients.Create(ctx, &models.Client{Name: " João Silva ", Document: strPtr("123.456.789-01")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Name != "João Silva" || c.Document == nil || *c.Document != "12345678901" {
		t.Errorf("client = %q %v, want trimmed name and bare digits", c.Name, c.Document)
	}

	_, err = clients.Create(ctx, &models.Client{Name: "Outro", Document: strPtr("12345678901")})
	if !apperrors.HasCode(err, apperrors.ErrCodeConflict) {
		t.Errorf("err = %v, want CONFLICT for duplicate document", err)
	}
	_, err = clients.Create(ctx, &models.Client{Name: "Curto", Document: strPtr("123")})
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidArgument) {
		t.Errorf("err = %v, want INVALID_ARGUMENT for short document", err)
	}
	_, err = clients.Create(ctx, &models.Client{Name: "Sem e-mail", Email: "not-an-email"})
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidArgument) {
		t.Errorf("err = %v, want INVALID_ARGUMENT for email", err)
	}

	// blank documents are stored as NULL and never collide
	for _, name := range []string{"Ana", "Bia"} {
		created, err := clients.Create(ctx, &models.Client{Name: name, Document: strPtr("  ")})
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if created.Document != nil {
			t.Errorf("document = %q, want nil", *created.Document)
		}
	}

	updated, err := clients.Update(ctx, c.ID, ClientPatch{Phone: strPtr("(24) 99999-8888")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Phone != "(24) 99999-8888" || *updated.Document != "12345678901" {
		t.Errorf("updated = %+v", updated)
	}
	if _, err := clients.Update(ctx, f.client.ID, ClientPatch{Document: strPtr("123.456.789-01")}); !apperrors.HasCode(err, apperrors.ErrCodeConflict) {
		t.Errorf("err = %v, want CONFLICT", err)
	}
}

func TestClientListSearchIgnoresAccents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	clients := NewClientService(f.db)
	if _, err := clients.Create(ctx, &models.Client{Name: "José Antônio", Phone: "24988887777"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	f.book(t, f.room, "2026-03-10", "2026-03-12", "")

	tests := []struct {
		search string
		want   int
	}{
		{"", 2},
		{"jose", 1},
		{"ANTONIO", 1},
		{"(24) 98888", 1},
		{"maria@example", 1},
		{"ninguém", 0},
	}
	for _, tt := range tests {
		got, err := clients.List(ctx, tt.search)
		if err != nil {
			t.Fatalf("list %q: %v", tt.search, err)
		}
		if len(got) != tt.want {
			t.Errorf("List(%q) = %d clients, want %d", tt.search, len(got), tt.want)
		}
	}

	all, err := clients.List(ctx, "maria")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if all[0].TotalReservations != 1 {
		t.Errorf("total reservations = %d, want 1", all[0].TotalReservations)
	}
}

func TestClientDetailAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	clients := NewClientService(f.db)
	f.book(t, f.room, "2026-03-10", "2026-03-12", "")
	f.book(t, f.otherRoom, "2026-04-01", "2026-04-05", "")

	detail, err := clients.Get(ctx, f.client.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if detail.TotalReservations != 2 || len(detail.RecentReservations) != 2 {
		t.Errorf("detail = %d total, %d recent, want 2/2", detail.TotalReservations, len(detail.RecentReservations))
	}
	if detail.LastCheckOut == nil || !detail.LastCheckOut.Equal(day("2026-04-05")) {
		t.Errorf("last check-out = %v, want 2026-04-05", detail.LastCheckOut)
	}

	if err := clients.Delete(ctx, f.client.ID); !apperrors.HasCode(err, apperrors.ErrCodeConflict) {
		t.Errorf("err = %v, want CONFLICT", err)
	}
	free, err := clients.Create(ctx, &models.Client{Name: "Sem reservas"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := clients.Delete(ctx, free.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := clients.Get(ctx, free.ID); !apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestSuggestClients(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	clients := NewClientService(f.db)
	for _, name := range []string{"Mariana Lima", "Márcio Reis", "Pedro Alves"} {
		if _, err := clients.Create(ctx, &models.Client{Name: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	got, err := clients.Suggest(ctx, "mari", 2)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("suggestions = %+v, want 2", got)
	}
	for _, s := range got {
		if s.Name != "Maria Souza" && s.Name != "Mariana Lima" {
			t.Errorf("unexpected suggestion %q", s.Name)
		}
	}

	none, err := clients.Suggest(ctx, "", 5)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("empty query returned %d suggestions", len(none))
	}
}

func TestRankSuggestions(t *testing.T) {
	names := []string{"Pedro Alves", "José Antônio", "Joselito Costa", "Ana Paula"}

	got := rankSuggestions("jose", names, 0)
	if len(got) < 2 {
		t.Fatalf("rank = %v, want at least two matches", got)
	}
	if names[got[0]] != "José Antônio" {
		t.Errorf("first = %q, want the exact accent-insensitive word", names[got[0]])
	}
	for _, i := range got {
		if names[i] == "Ana Paula" {
			t.Errorf("unrelated name %q ranked", names[i])
		}
	}

	if got := rankSuggestions("jose", names, 1); len(got) != 1 {
		t.Errorf("limit ignored: %v", got)
	}
	if sim := calculateSimilarity("abc", "abc"); sim != 1 {
		t.Errorf("similarity = %v, want 1", sim)
	}
	if got := normalizeInput("  ÁGUA Açúcar "); got != "agua acucar" {
		t.Errorf("normalizeInput = %q", got)
	}
}
