package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func validConfig(endpoint string) Config {
	return Config{
		ServiceID:  "service_abc123",
		TemplateID: "template_abc123",
		PublicKey:  "key_abc123",
		Endpoint:   endpoint,
	}
}

func sampleRequest() Request {
	return Request{
		To:            "ap@globex.test",
		Subject:       "Invoice INV-042",
		InvoiceNumber: "INV-042",
		CompanyName:   "Acme Studio",
		ClientName:    "Globex",
		Total:         "250.00",
		DueDate:       "7/1/2025",
		HTML:          "<!DOCTYPE html><html><body>invoice</body></html>",
	}
}

func TestSend_ViaAPI(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %s, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("payload not valid JSON: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := NewSender(validConfig(srv.URL)).WithOpener(func(string) error {
		t.Fatal("fallback opener must not run on API success")
		return nil
	})

	outcome, err := sender.Send(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Delivery != SentViaAPI {
		t.Errorf("delivery = %v, want SentViaAPI", outcome.Delivery)
	}

	if captured["service_id"] != "service_abc123" {
		t.Errorf("service_id = %v", captured["service_id"])
	}
	params, ok := captured["template_params"].(map[string]any)
	if !ok {
		t.Fatal("payload missing template_params")
	}
	for key, want := range map[string]string{
		"to_email":       "ap@globex.test",
		"invoice_number": "INV-042",
		"total_amount":   "250.00",
	} {
		if params[key] != want {
			t.Errorf("template_params[%s] = %v, want %s", key, params[key], want)
		}
	}
	if params["message"] != "Please find your invoice INV-042 attached." {
		t.Errorf("default message = %v", params["message"])
	}
}

func TestSend_NonSuccessStatusFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad template", http.StatusBadRequest)
	}))
	defer srv.Close()

	var opened string
	sender := NewSender(validConfig(srv.URL)).WithOpener(func(uri string) error {
		opened = uri
		return nil
	})

	outcome, err := sender.Send(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("fallback should still succeed, got %v", err)
	}
	if outcome.Delivery != OpenedMailClient {
		t.Errorf("delivery = %v, want OpenedMailClient", outcome.Delivery)
	}
	if !strings.HasPrefix(opened, "mailto:ap@globex.test?") {
		t.Errorf("opened URI = %q", opened)
	}
}

func TestSend_NetworkErrorFallsBack(t *testing.T) {
	// Point at a closed server so the POST fails outright.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	var opened string
	sender := NewSender(validConfig(endpoint)).WithOpener(func(uri string) error {
		opened = uri
		return nil
	})

	outcome, err := sender.Send(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("fallback should still succeed, got %v", err)
	}
	if outcome.Delivery != OpenedMailClient {
		t.Errorf("delivery = %v, want OpenedMailClient", outcome.Delivery)
	}
	if opened == "" {
		t.Error("mail client was not opened")
	}
}

func TestSend_UnconfiguredSkipsNetwork(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	configs := []Config{
		{}, // empty
		{ServiceID: placeholderServiceID, TemplateID: "t", PublicKey: "k", Endpoint: srv.URL},
		{ServiceID: "s", TemplateID: placeholderTemplateID, PublicKey: "k", Endpoint: srv.URL},
		{ServiceID: "s", TemplateID: "t", PublicKey: placeholderPublicKey, Endpoint: srv.URL},
	}

	for _, cfg := range configs {
		var opened string
		sender := NewSender(cfg).WithOpener(func(uri string) error {
			opened = uri
			return nil
		})
		outcome, err := sender.Send(context.Background(), sampleRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome.Delivery != OpenedMailClient {
			t.Errorf("delivery = %v, want OpenedMailClient", outcome.Delivery)
		}
		if opened == "" {
			t.Error("mail client was not opened")
		}
	}
	if requests != 0 {
		t.Errorf("unconfigured sender made %d network requests", requests)
	}
}

func TestSend_ValidationAbortsBeforeNetwork(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	sender := NewSender(validConfig(srv.URL)).WithOpener(func(string) error {
		t.Fatal("opener must not run for invalid requests")
		return nil
	})

	req := sampleRequest()
	req.To = "  "
	if _, err := sender.Send(context.Background(), req); err != ErrMissingRecipient {
		t.Errorf("missing recipient: got %v", err)
	}

	req = sampleRequest()
	req.Subject = ""
	if _, err := sender.Send(context.Background(), req); err != ErrMissingSubject {
		t.Errorf("missing subject: got %v", err)
	}

	if requests != 0 {
		t.Errorf("invalid requests reached the network %d times", requests)
	}
}

func TestMailtoLink(t *testing.T) {
	req := sampleRequest()
	req.Message = "Net 30 & thanks"
	link := MailtoLink(req)

	if !strings.HasPrefix(link, "mailto:ap@globex.test?subject=") {
		t.Fatalf("link = %q", link)
	}

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link not parseable: %v", err)
	}
	q, err := url.ParseQuery(parsed.RawQuery)
	if err != nil {
		t.Fatalf("query not parseable: %v", err)
	}

	if q.Get("subject") != "Invoice INV-042" {
		t.Errorf("subject = %q", q.Get("subject"))
	}
	body := q.Get("body")
	for _, want := range []string{
		"INVOICE INV-042",
		"Net 30 & thanks",
		"- Due Date: 7/1/2025",
		"- Total Amount: ₱250.00",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestComposeBody_Defaults(t *testing.T) {
	req := sampleRequest()
	req.ClientName = ""
	req.CompanyName = ""
	body := ComposeBody(req)

	if !strings.Contains(body, "Dear Valued Customer,") {
		t.Error("missing default salutation")
	}
	if !strings.Contains(body, "Best regards,\nYour Company") {
		t.Error("missing default signature")
	}
	if !strings.Contains(body, "Please find your invoice INV-042 for the services provided.") {
		t.Error("missing default message")
	}
}
