package google

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
}

func TestNewRequiresSpreadsheetID(t *testing.T) {
	clearCredentials(t)

	_, err := New(context.Background(), "", "Expenses")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spreadsheet id")

	_, err = New(context.Background(), "   ", "Expenses")
	assert.Error(t, err)
}

func TestNewRequiresCredentials(t *testing.T) {
	clearCredentials(t)

	_, err := New(context.Background(), "sheet-id", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials")
}
