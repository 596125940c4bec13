package http

import (
	"context"
	stdhttp "net/http"
	"testing"

	"smoweb/app/internal/domain/club"
	"smoweb/app/internal/domain/directory"
)

func TestActivityRoutesNeedAnAuthor(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	categoryID := env.category(t)

	activity := map[string]any{
		"title":       "Robotics workshop",
		"description": "Build a line follower",
		"type":        "workshop",
		"startDate":   "2030-03-01",
		"endDate":     "2030-03-02",
		"categoryId":  categoryID,
	}

	rec := env.do(t, "POST", "/api/activities", activity)
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("expected 400 without any admin, got %d: %s", rec.Code, rec.Body.String())
	}

	if _, err := env.users.Create(context.Background(), directory.UserInput{
		Email: "admin@example.com", Username: "admin", Password: "supersecret", Role: "ADMIN",
	}); err != nil {
		t.Fatalf("creating admin: %v", err)
	}

	rec = env.do(t, "POST", "/api/activities", activity)
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Data club.Activity `json:"data"`
	}
	decode(t, rec, &created)
	if created.Data.Type != "WORKSHOP" || created.Data.Status != club.ActivityPlanning || !created.Data.IsPublic {
		t.Fatalf("unexpected defaults: %+v", created.Data)
	}
	if created.Data.Author == nil || created.Data.Author.Email != "admin@example.com" {
		t.Fatalf("expected the admin to be credited, got %+v", created.Data.Author)
	}

	backwards := map[string]any{"startDate": "2030-03-05", "endDate": "2030-03-01"}
	if rec := env.do(t, "PUT", "/api/activities?id="+created.Data.ID, backwards); rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("expected 400 for an end before the start, got %d", rec.Code)
	}

	var listed struct {
		Total int `json:"total"`
	}
	decode(t, env.do(t, "GET", "/api/activities?type=WORKSHOP", nil), &listed)
	if listed.Total != 1 {
		t.Fatalf("expected one workshop, got %d", listed.Total)
	}

	if rec := env.do(t, "DELETE", "/api/activities?id="+created.Data.ID, nil); rec.Code != stdhttp.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := env.do(t, "GET", "/api/activities?id="+created.Data.ID, nil); rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestDocumentDownloadsAreCounted(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(t, "POST", "/api/documents", map[string]any{
		"title":      "Bylaws",
		"fileName":   "bylaws.pdf",
		"fileUrl":    "/files/bylaws.pdf",
		"uploadedBy": "secretary",
		"isPublic":   true,
	})
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Data club.Document `json:"data"`
	}
	decode(t, rec, &created)

	for range 2 {
		if rec := env.do(t, "PATCH", "/api/documents?action=download&id="+created.Data.ID, nil); rec.Code != stdhttp.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	}
	if rec := env.do(t, "PATCH", "/api/documents?action=rename&id="+created.Data.ID, nil); rec.Code == stdhttp.StatusOK {
		t.Fatalf("expected unknown actions to be rejected")
	}

	rec = env.do(t, "PUT", "/api/documents?id="+created.Data.ID, map[string]any{"title": "Club bylaws"})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated struct {
		Data club.Document `json:"data"`
	}
	decode(t, rec, &updated)
	if updated.Data.DownloadCount != 2 || updated.Data.Title != "Club bylaws" {
		t.Fatalf("expected two downloads to survive the edit, got %+v", updated.Data)
	}

	if rec := env.do(t, "PATCH", "/api/documents?action=download&id=missing", nil); rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDonationsUpdateCampaignTotals(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(t, "POST", "/api/donations", map[string]any{
		"title":        "New drums",
		"description":  "Replace the broken kit",
		"targetAmount": 500,
		"startDate":    "2030-01-01",
		"endDate":      "2030-06-30",
		"category":     "equipment",
		"createdBy":    "treasurer",
	})
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Data club.Campaign `json:"data"`
	}
	decode(t, rec, &created)
	target := "/api/donations/contributions?campaignId=" + created.Data.ID

	if rec := env.do(t, "POST", target, map[string]any{"donorName": "Nok", "amount": 120.5}); rec.Code != stdhttp.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = env.do(t, "POST", target, map[string]any{"amount": 30, "isAnonymous": true})
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var totals struct {
		Data club.Campaign `json:"data"`
	}
	decode(t, rec, &totals)
	if totals.Data.CurrentAmount != 150.5 || totals.Data.DonorCount != 2 || len(totals.Data.Donations) != 2 {
		t.Fatalf("unexpected totals: %+v", totals.Data)
	}
	if totals.Data.Donations[0].DonorName != "Anonymous" {
		t.Fatalf("expected newest donation first and named Anonymous, got %+v", totals.Data.Donations[0])
	}

	if rec := env.do(t, "POST", target, map[string]any{"amount": 10}); rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("expected 400 for a named donation without a name, got %d", rec.Code)
	}

	if rec := env.do(t, "PUT", "/api/donations?id="+created.Data.ID, map[string]any{"status": "PAUSED"}); rec.Code != stdhttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := env.do(t, "POST", target, map[string]any{"donorName": "Late", "amount": 5}); rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("expected 400 for a paused campaign, got %d", rec.Code)
	}

	var active, all struct {
		Total int `json:"total"`
	}
	decode(t, env.do(t, "GET", "/api/donations", nil), &active)
	decode(t, env.do(t, "GET", "/api/donations?status=all", nil), &all)
	if active.Total != 0 || all.Total != 1 {
		t.Fatalf("expected the paused campaign only under all, got active=%d all=%d", active.Total, all.Total)
	}
}

func TestUserRegistrationAndRosterRoutes(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	user := map[string]any{
		"email": "Somchai@Example.com", "username": "somchai", "password": "longenough",
		"firstName": "Somchai", "lastName": "Dee",
	}
	rec := env.do(t, "POST", "/api/users", user)
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Data directory.User `json:"data"`
	}
	decode(t, rec, &created)
	if created.Data.Email != "somchai@example.com" {
		t.Fatalf("expected the email to be lowercased, got %q", created.Data.Email)
	}
	if rec := env.do(t, "POST", "/api/users", user); rec.Code != stdhttp.StatusConflict {
		t.Fatalf("expected 409 for a second registration, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, "POST", "/api/staff", map[string]any{
		"userId": created.Data.ID, "department": "Engineering", "position": "Advisor",
	})
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var staff struct {
		Data club.Staff `json:"data"`
	}
	decode(t, rec, &staff)
	if staff.Data.FirstName != "Somchai" || staff.Data.Email != "somchai@example.com" {
		t.Fatalf("expected the profile to carry the user's name, got %+v", staff.Data)
	}
	if rec := env.do(t, "POST", "/api/staff", map[string]any{
		"userId": "nobody", "department": "Engineering", "position": "Advisor",
	}); rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown user, got %d", rec.Code)
	}

	for _, member := range []map[string]any{
		{"name": "Ann", "department": "Computer Engineering", "faculty": "Engineering", "year": 2},
		{"name": "Ben", "department": "Civil Engineering", "faculty": "Engineering", "year": 4},
		{"name": "Cat", "department": "Economics", "faculty": "Social Sciences", "year": 2},
	} {
		if rec := env.do(t, "POST", "/api/members", member); rec.Code != stdhttp.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	}
	var members struct {
		Total int           `json:"total"`
		Data  []club.Member `json:"data"`
	}
	decode(t, env.do(t, "GET", "/api/members?department=engineering&year=2", nil), &members)
	if members.Total != 1 || members.Data[0].Name != "Ann" {
		t.Fatalf("expected only Ann, got %+v", members.Data)
	}

	if rec := env.do(t, "POST", "/api/positions", map[string]any{"title": "President", "type": "executive", "level": 10}); rec.Code != stdhttp.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := env.do(t, "POST", "/api/positions", map[string]any{"title": "President", "type": "executive"}); rec.Code != stdhttp.StatusConflict {
		t.Fatalf("expected 409 for a duplicate title, got %d", rec.Code)
	}
}
