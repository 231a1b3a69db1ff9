package usecase

import (
	"context"
	"errors"
	"testing"

	"search-service/domain"
)

func TestDeleteServiceUsecase_Execute(t *testing.T) {
	tests := []struct {
		name         string
		id           string
		engineErr    error
		wantErr      bool
		wantNotFound bool
		wantValid    bool
	}{
		{
			name: "successful delete",
			id:   "42",
		},
		{
			name:         "never-indexed id reports not found, not a failure",
			id:           "999",
			engineErr:    domain.ErrDocumentNotFound,
			wantErr:      true,
			wantNotFound: true,
		},
		{
			name:      "engine failure propagates",
			id:        "42",
			engineErr: &domain.SearchEngineError{Op: "DeleteDocument", Err: "engine down"},
			wantErr:   true,
		},
		{
			name:      "empty id rejected",
			id:        "",
			wantErr:   true,
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &mockSearchEngine{deleteErr: tt.engineErr}
			u := NewDeleteServiceUsecase(engine)

			err := u.Execute(context.Background(), tt.id)

			if (err != nil) != tt.wantErr {
				t.Fatalf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantNotFound && !errors.Is(err, domain.ErrDocumentNotFound) {
				t.Errorf("Execute() error = %v, want ErrDocumentNotFound", err)
			}
			if tt.wantValid && !domain.IsValidation(err) {
				t.Errorf("Execute() error = %v, want validation error", err)
			}
		})
	}
}
