package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentStatus_IsValid(t *testing.T) {
	assert.True(t, StatusUploading.IsValid())
	assert.True(t, StatusProcessed.IsValid())
	assert.True(t, StatusError.IsValid())
	assert.False(t, DocumentStatus("queued").IsValid())
}

func TestDocument_Processed(t *testing.T) {
	assert.True(t, Document{Status: StatusProcessed}.Processed())
	assert.False(t, Document{Status: StatusUploading}.Processed())
	assert.False(t, Document{Status: StatusError}.Processed())
}
