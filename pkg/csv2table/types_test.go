package csv2table

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() LoadRequest {
	return LoadRequest{
		TableName:  "people",
		Records:    []Record{NewRecord([]string{"name"}, []string{"Alice"})},
		Connection: &ConnectionConfig{Dialect: "sqlite", Database: ":memory:"},
		UserID:     "8f14e45f-ceea-467a-9575-1b8bda1d5c3e",
	}
}

func TestLoadRequest_Validate_OK(t *testing.T) {
	req := validRequest()
	assert.NoError(t, req.Validate())
}

func TestLoadRequest_Validate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LoadRequest)
		want   string
	}{
		{"no records", func(r *LoadRequest) { r.Records = nil }, "no records"},
		{"no table", func(r *LoadRequest) { r.TableName = "" }, "table name"},
		{"no connection", func(r *LoadRequest) { r.Connection = nil }, "connection parameters"},
		{"no dialect", func(r *LoadRequest) { r.Connection.Dialect = "" }, "dialect"},
		{"no target", func(r *LoadRequest) { r.Connection.Database = "" }, "no server or database"},
		{"no user", func(r *LoadRequest) { r.UserID = "" }, "user identifier is required"},
		{"bad user", func(r *LoadRequest) { r.UserID = "bob" }, "not a UUID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := req.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadRequest_Validate_CollectsAllFailures(t *testing.T) {
	req := LoadRequest{}
	err := req.Validate()
	require.Error(t, err)

	assert.Contains(t, err.Error(), "no records")
	assert.Contains(t, err.Error(), "table name")
	assert.Contains(t, err.Error(), "connection parameters")
	assert.Contains(t, err.Error(), "user identifier")
}

func TestSchema_Columns(t *testing.T) {
	s := &Schema{Table: "people", Columns: []string{"name", "age"}}

	assert.Equal(t,
		[]string{"Id", "name", "age", "DateCreated", "DateModified", "UserCreatedId", "UserModifiedId"},
		s.AllColumns())
	assert.Equal(t, []string{"name", "age", "UserCreatedId"}, s.InsertColumns())
}

func TestAuthMethod_String(t *testing.T) {
	assert.Equal(t, "Standard", AuthMethodStandard.String())
	assert.Equal(t, "AWS IAM", AuthMethodAWSIAM.String())
	assert.Equal(t, "Google IAM", AuthMethodGoogleIAM.String())
	assert.Equal(t, "Azure Entra ID", AuthMethodAzureEntraID.String())
	assert.Equal(t, "Unknown(42)", AuthMethod(42).String())
	assert.False(t, AuthMethod(42).IsValid())
}
