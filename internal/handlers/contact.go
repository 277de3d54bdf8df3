package handlers

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lifesource-backend/internal/mailer"
	"lifesource-backend/internal/models"
)

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

/*
POST /contact
Persists the submission, then notifies the operator and confirms to the
submitter. A mail failure is reported as a generic submission failure; the
stored message still reaches the back office.
*/
func SubmitContact(db *mongo.Database, mail mailer.Sender, recipient string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /contact"

		var req ContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, "name, email and message are required")
			return
		}

		message := models.ContactMessage{
			Name:      strings.TrimSpace(req.Name),
			Email:     strings.ToLower(strings.TrimSpace(req.Email)),
			Phone:     strings.TrimSpace(req.Phone),
			Company:   strings.TrimSpace(req.Company),
			Subject:   strings.TrimSpace(req.Subject),
			Message:   strings.TrimSpace(req.Message),
			CreatedAt: time.Now(),
		}
		if message.Message == "" {
			respondValidationError(c, "message cannot be empty")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if _, err := db.Collection("messages").InsertOne(ctx, message); err != nil {
			log.Printf("[%s] insert error: %v", route, err)
			respondError(c, http.StatusInternalServerError, codeInternal, "submission failed")
			return
		}

		if err := sendContactMail(mail, recipient, message); err != nil {
			log.Printf("[%s] mail error: %v", route, err)
			respondError(c, http.StatusInternalServerError, codeInternal, "submission failed")
			return
		}

		respondCreated(c, gin.H{"received": true})
	}
}

func sendContactMail(mail mailer.Sender, recipient string, msg models.ContactMessage) error {
	subject := msg.Subject
	if subject == "" {
		subject = "Website inquiry"
	}

	operatorText := fmt.Sprintf(
		"New inquiry from %s <%s>\nPhone: %s\nCompany: %s\n\n%s",
		msg.Name, msg.Email, msg.Phone, msg.Company, msg.Message,
	)
	operatorHTML := fmt.Sprintf(
		"<p>New inquiry from <b>%s</b> &lt;%s&gt;</p><p>Phone: %s<br>Company: %s</p><p>%s</p>",
		template.HTMLEscapeString(msg.Name),
		template.HTMLEscapeString(msg.Email),
		template.HTMLEscapeString(msg.Phone),
		template.HTMLEscapeString(msg.Company),
		template.HTMLEscapeString(msg.Message),
	)
	if err := mail.Send(recipient, "[contact] "+subject, operatorText, operatorHTML); err != nil {
		return err
	}

	confirmText := fmt.Sprintf(
		"Hello %s,\n\nThank you for reaching out. We received your message and will reply shortly.\n\nYour message:\n%s",
		msg.Name, msg.Message,
	)
	confirmHTML := fmt.Sprintf(
		"<p>Hello %s,</p><p>Thank you for reaching out. We received your message and will reply shortly.</p><blockquote>%s</blockquote>",
		template.HTMLEscapeString(msg.Name),
		template.HTMLEscapeString(msg.Message),
	)
	return mail.Send(msg.Email, "We received your message", confirmText, confirmHTML)
}

// GET /admin/api/messages
func GetContactMessages(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/messages"

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(200)

		cursor, err := db.Collection("messages").Find(ctx, bson.M{}, opts)
		if err != nil {
			respondError(c, http.StatusInternalServerError, codeInternal, "internal error")
			return
		}
		defer cursor.Close(ctx)

		messages := make([]models.ContactMessage, 0)
		if err := cursor.All(ctx, &messages); err != nil {
			respondError(c, http.StatusInternalServerError, codeInternal, "internal error")
			return
		}

		respondOK(c, messages)
	}
}
