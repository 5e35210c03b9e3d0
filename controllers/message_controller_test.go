package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supplyline/supplyline-api/models"
)

func setupMessageRouter(identity *models.Identity) *gin.Engine {
	router := setupTestRouter()
	authed := router.Group("/")
	authed.Use(authAs(identity))
	authed.POST("/chat", SendMessage)
	authed.GET("/chat/:user_id", GetChatHistory)
	return router
}

func TestSendMessage(t *testing.T) {
	db := setupTestDB(t)
	sender := createConsumer(t, db, "buyer@example.com")
	recipient, _ := createSupplier(t, db, "supplier@example.com", "MegaCorp")
	router := setupMessageRouter(sender)

	w := doJSON(t, router, "POST", "/chat", gin.H{
		"recipient_id": recipient.ID,
		"content":      "Do you ship to Hamburg?",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	response := decodeEnvelope(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Do you ship to Hamburg?", data["content"])
	assert.Equal(t, float64(sender.ID), data["sender_id"])
	assert.Equal(t, float64(recipient.ID), data["recipient_id"])
	assert.NotEmpty(t, data["timestamp"])
}

func TestSendMessageUnknownRecipient(t *testing.T) {
	db := setupTestDB(t)
	sender := createConsumer(t, db, "buyer@example.com")
	router := setupMessageRouter(sender)

	w := doJSON(t, router, "POST", "/chat", gin.H{
		"recipient_id": 9999,
		"content":      "Hello?",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	response := decodeEnvelope(t, w)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "RECIPIENT_NOT_FOUND", errorData["code"])
}

func TestSendMessageValidation(t *testing.T) {
	db := setupTestDB(t)
	sender := createConsumer(t, db, "buyer@example.com")
	recipient, _ := createSupplier(t, db, "supplier@example.com", "MegaCorp")
	router := setupMessageRouter(sender)

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing recipient", gin.H{"content": "hi"}},
		{"missing content", gin.H{"recipient_id": recipient.ID}},
		{"empty content", gin.H{"recipient_id": recipient.ID, "content": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, "POST", "/chat", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetChatHistoryBothDirections(t *testing.T) {
	db := setupTestDB(t)
	buyer := createConsumer(t, db, "buyer@example.com")
	supplier, _ := createSupplier(t, db, "supplier@example.com", "MegaCorp")
	bystander := createConsumer(t, db, "bystander@example.com")

	require.NoError(t, db.Create(&models.Message{SenderID: buyer.ID, RecipientID: supplier.ID, Text: "Do you ship to Hamburg?"}).Error)
	require.NoError(t, db.Create(&models.Message{SenderID: supplier.ID, RecipientID: buyer.ID, Text: "Yes, within two days."}).Error)
	require.NoError(t, db.Create(&models.Message{SenderID: bystander.ID, RecipientID: supplier.ID, Text: "Unrelated"}).Error)

	router := setupMessageRouter(buyer)
	w := doJSON(t, router, "GET", fmt.Sprintf("/chat/%d", supplier.ID), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeEnvelope(t, w)
	messages := response["data"].([]interface{})
	require.Len(t, messages, 2, "Both directions of the conversation, nothing else")

	first := messages[0].(map[string]interface{})
	second := messages[1].(map[string]interface{})
	assert.Equal(t, "Do you ship to Hamburg?", first["content"])
	assert.Equal(t, "Yes, within two days.", second["content"])
}

func TestGetChatHistoryEmpty(t *testing.T) {
	db := setupTestDB(t)
	buyer := createConsumer(t, db, "buyer@example.com")
	supplier, _ := createSupplier(t, db, "supplier@example.com", "MegaCorp")
	router := setupMessageRouter(buyer)

	w := doJSON(t, router, "GET", fmt.Sprintf("/chat/%d", supplier.ID), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeEnvelope(t, w)
	messages := response["data"].([]interface{})
	assert.Empty(t, messages)
}

func TestGetChatHistoryInvalidUserID(t *testing.T) {
	db := setupTestDB(t)
	buyer := createConsumer(t, db, "buyer@example.com")
	router := setupMessageRouter(buyer)

	w := doJSON(t, router, "GET", "/chat/abc", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decodeEnvelope(t, w)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "INVALID_REQUEST", errorData["code"])
}
