package common

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-bank-ledger/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(body string, payload interface{}) *AppError {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	return ValidateAndDecode(r, payload)
}

func TestValidateAndDecode_Amounts(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"string amount", `{"amount":"25.10"}`, false},
		{"number amount", `{"amount":0.01}`, false},
		{"zero", `{"amount":"0"}`, true},
		{"negative", `{"amount":"-3"}`, true},
		{"missing", `{}`, true},
		{"not a number", `{"amount":"ten"}`, true},
		{"malformed json", `{"amount":`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req model.AmountRequest
			appErr := decodeBody(tt.body, &req)
			if tt.wantErr {
				require.NotNil(t, appErr)
				assert.Equal(t, http.StatusBadRequest, appErr.Code)
				return
			}
			assert.Nil(t, appErr)
		})
	}
}

func TestValidateAndDecode_CreateAccount(t *testing.T) {
	var ok model.CreateAccountRequest
	assert.Nil(t, decodeBody(`{"branch_id":1,"account_type":"savings","currency_code":"USD","initial_balance":"0"}`, &ok))

	var bad model.CreateAccountRequest
	appErr := decodeBody(`{"branch_id":1,"account_type":"checking","currency_code":"usd","initial_balance":"-1"}`, &bad)
	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Message, "account_type")
	assert.Contains(t, appErr.Message, "currency_code")
	assert.Contains(t, appErr.Message, "initial_balance must be a decimal not below zero")
}

func TestAppError_SendSetsRetryAfter(t *testing.T) {
	rr := httptest.NewRecorder()
	appErr := NewAppError(http.StatusConflict, "busy", nil).WithKind("storage_conflict")
	appErr.RetryAfter = 1

	appErr.Send(rr)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"code":409,"error":"storage_conflict","message":"busy"}`, rr.Body.String())
}
