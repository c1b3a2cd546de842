package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/neurobridge-disguise/internal/services"
)

// parseOptionalUUID treats an empty value as uuid.Nil.
func parseOptionalUUID(raw, name string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", name, services.ErrInvalidArgument)
	}
	return id, nil
}

func parseRequiredUUID(raw, name string) (uuid.UUID, error) {
	id, err := parseOptionalUUID(raw, name)
	if err != nil {
		return uuid.Nil, err
	}
	if id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%s required: %w", name, services.ErrInvalidArgument)
	}
	return id, nil
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, error) {
	return parseRequiredUUID(c.Param(name), name)
}
