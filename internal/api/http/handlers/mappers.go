package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/workspace"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

func currentWorkspace(c *fiber.Ctx) (*workspace.Workspace, error) {
	ws, ok := auth.WorkspaceFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("workspace required")
	}
	return ws, nil
}

func accountResponse(account domain.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:     account.ID,
		Name:   account.Name,
		Email:  account.Email,
		Role:   account.Role,
		Active: account.Active,
	}
}

func ticketResponse(ticket domain.Ticket, canUpdateStatus bool) dto.TicketResponse {
	comments := make([]dto.CommentResponse, 0, len(ticket.Comments))
	for _, comment := range ticket.Comments {
		comments = append(comments, commentResponse(comment))
	}
	return dto.TicketResponse{
		ID:              ticket.ID,
		Title:           ticket.Title,
		Description:     ticket.Description,
		Status:          ticket.Status,
		Priority:        ticket.Priority,
		Category:        ticket.Category,
		CreatedAt:       ticket.CreatedAt.Format(domain.DateLayout),
		Comments:        comments,
		CanUpdateStatus: canUpdateStatus,
	}
}

func commentResponse(comment domain.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:         comment.ID,
		TicketID:   comment.TicketID,
		AuthorID:   comment.AuthorID,
		AuthorName: comment.AuthorName,
		Content:    comment.Content,
		CreatedAt:  comment.CreatedAt,
	}
}

func historyResponse(entry domain.TicketHistory) dto.TicketHistoryResponse {
	return dto.TicketHistoryResponse{
		ID:        entry.ID,
		EventType: entry.EventType,
		ActorID:   entry.ActorID,
		Payload:   entry.Payload,
		CreatedAt: entry.CreatedAt,
	}
}
