package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"marrynow/database"
	"marrynow/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotifier(t *testing.T) {
	assert.IsType(t, LogNotifier{}, NewNotifier("", "noreply@marrynow.app"))
	assert.IsType(t, &SendGridNotifier{}, NewNotifier("SG.key", "noreply@marrynow.app"))
}

func TestApprovalEmails(t *testing.T) {
	subject, body := contactApprovedEmail(
		models.ContactRequest{BiodataID: 12, UserName: "Nadia"},
		&models.Biodata{Name: "Rafi"},
	)
	assert.Equal(t, "Contact Request Approved", subject)
	assert.Contains(t, body, "Nadia")
	assert.Contains(t, body, "#12")
	assert.Contains(t, body, "Rafi")

	_, body = contactApprovedEmail(models.ContactRequest{BiodataID: 12}, nil)
	assert.Contains(t, body, "the requested profile")

	subject, body = premiumApprovedEmail(models.Biodata{BiodataID: 3, Name: "Rafi"})
	assert.Equal(t, "Premium Membership Approved", subject)
	assert.Contains(t, body, "#3")
}

func TestApprovalEmails_EscapeNames(t *testing.T) {
	_, body := contactApprovedEmail(
		models.ContactRequest{BiodataID: 1, UserName: `<script>alert("x")</script>`},
		&models.Biodata{Name: `<img src=x onerror=alert(1)>`},
	)
	assert.NotContains(t, body, "<script>")
	assert.NotContains(t, body, "<img")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, "&lt;img src=x onerror=alert(1)&gt;")

	_, body = premiumApprovedEmail(models.Biodata{BiodataID: 2, Name: "<b>Rafi</b>"})
	assert.NotContains(t, body, "<b>Rafi</b>")
	assert.Contains(t, body, "&lt;b&gt;Rafi&lt;/b&gt;")
}

func TestSendGridNotifier_WaitDrainsPendingSends(t *testing.T) {
	var delivered atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		delivered.Add(1)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	request := sendgrid.GetRequest("SG.test", "/v3/mail/send", srv.URL)
	request.Method = "POST"
	n := &SendGridNotifier{client: &sendgrid.Client{Request: request}, sender: "noreply@marrynow.app"}

	n.ContactApproved(models.ContactRequest{BiodataID: 1, UserEmail: "u@example.com"}, nil)
	n.PremiumApproved(models.Biodata{BiodataID: 2, Email: "p@example.com"})
	n.Wait()

	assert.EqualValues(t, 2, delivered.Load())
}

func TestInitializeCounterScheduler(t *testing.T) {
	store := database.NewMemoryStore()

	c, err := InitializeCounterScheduler(store, "")
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = InitializeCounterScheduler(store, "not a schedule")
	assert.Error(t, err)

	c, err = InitializeCounterScheduler(store, "@every 1h")
	require.NoError(t, err)
	require.NotNil(t, c)
	<-c.Stop().Done()
}

func TestSyncBiodataCounter(t *testing.T) {
	ctx := context.Background()
	store := database.NewMemoryStore()
	_, err := store.InsertBiodata(ctx, &models.Biodata{BiodataID: 41, Email: "imported@example.com"})
	require.NoError(t, err)

	SyncBiodataCounter(store)

	next, err := store.NextBiodataID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42, next)
}
