package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/analytics"
	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/internal/mailrelay"
)

// ContactForm is the contact section input. Only presence is checked.
type ContactForm struct {
	Name    string `form:"name" binding:"required"`
	Email   string `form:"email" binding:"required"`
	Message string `form:"message" binding:"required"`
}

type toast struct {
	Kind        string
	Title       string
	Description string
}

// contactView renders the form. Submit is always re-enabled on render; the
// client disables it only while a request is in flight.
type contactView struct {
	Form        ContactForm
	Toast       *toast
	WhatsAppURL string
}

func (s *site) contactView(form ContactForm, t *toast) contactView {
	return contactView{Form: form, Toast: t, WhatsAppURL: s.cfg.WhatsAppURL()}
}

func (s *site) handleContact(c *gin.Context) {
	log := logging.For(s.logger, c)

	var form ContactForm
	if err := c.ShouldBind(&form); err != nil {
		log.Info("contact form incomplete", zap.Error(err))
		c.HTML(http.StatusOK, "contact.html", s.contactView(form, &toast{
			Kind:        "error",
			Title:       contactErrorTitle,
			Description: contactMissingBody,
		}))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.Mail.Timeout)
	defer cancel()

	err := s.relay.Send(ctx, mailrelay.Message{Name: form.Name, Email: form.Email, Body: form.Message})
	if err != nil {
		log.Error("error sending contact message", zap.String("relay", s.relay.Name()), zap.Error(err))
		s.record(c, analytics.ContactFailed, s.relay.Name())
		c.HTML(http.StatusOK, "contact.html", s.contactView(form, &toast{
			Kind:        "error",
			Title:       contactErrorTitle,
			Description: contactErrorBody,
		}))
		return
	}

	log.Info("contact message sent", zap.String("relay", s.relay.Name()))
	s.record(c, analytics.ContactSent, s.relay.Name())
	c.HTML(http.StatusOK, "contact.html", s.contactView(ContactForm{}, &toast{
		Kind:        "success",
		Title:       contactSuccessTitle,
		Description: contactSuccessBody,
	}))
}
