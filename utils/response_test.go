package utils

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestNewMeta(t *testing.T) {
	cases := []struct {
		page, limit int
		total       int64
		hasNext     bool
	}{
		{1, 20, 0, false},
		{1, 20, 20, false},
		{1, 20, 21, true},
		{2, 20, 40, false},
		{2, 20, 41, true},
	}
	for _, tc := range cases {
		m := NewMeta(tc.page, tc.limit, tc.total)
		if m.HasNext != tc.hasNext {
			t.Errorf("page=%d limit=%d total=%d: hasNext = %v, want %v",
				tc.page, tc.limit, tc.total, m.HasNext, tc.hasNext)
		}
	}
}

func decodeBody(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.NewDecoder(body).Decode(&out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return out
}

func TestSuccessEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return OK(c, fiber.StatusOK, fiber.Map{"value": 42})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	body := decodeBody(t, resp.Body)
	if body["success"] != true {
		t.Errorf("success = %v", body["success"])
	}
	if _, present := body["error"]; present {
		t.Error("success envelope must not carry an error block")
	}
}

func TestErrorEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return Fail(c, fiber.StatusConflict, CodeConflict, "already exists",
			[]FieldError{{Field: "Email", Rule: "unique"}})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	body := decodeBody(t, resp.Body)
	if body["success"] != false {
		t.Errorf("success = %v", body["success"])
	}
	errBlock, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing error block: %v", body)
	}
	if errBlock["code"] != CodeConflict {
		t.Errorf("code = %v", errBlock["code"])
	}
	if errBlock["message"] != "already exists" {
		t.Errorf("message = %v", errBlock["message"])
	}
	if errBlock["details"] == nil {
		t.Error("details should be present when supplied")
	}
}

func TestMetaEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return OKWithMeta(c, fiber.Map{"items": []int{}}, NewMeta(1, 20, 55))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}

	body := decodeBody(t, resp.Body)
	meta, ok := body["meta"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing meta block: %v", body)
	}
	if meta["total"] != float64(55) {
		t.Errorf("total = %v", meta["total"])
	}
	if meta["hasNext"] != true {
		t.Errorf("hasNext = %v", meta["hasNext"])
	}
}
