package controller

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/benbeisheim/chessrules/internal/export"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/service"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{errors.Wrap(service.ErrGameNotFound, "abc"), fiber.StatusNotFound},
		{model.ErrNotYourTurn, fiber.StatusForbidden},
		{model.ErrNotAuthorized, fiber.StatusForbidden},
		{model.ErrGameFull, fiber.StatusConflict},
		{model.ErrAlreadyQueued, fiber.StatusConflict},
		{model.ErrBadNotation, fiber.StatusBadRequest},
		{errors.Wrapf(model.ErrIllegalMove, "e2-e5"), fiber.StatusUnprocessableEntity},
		{model.ErrNothingToUndo, fiber.StatusUnprocessableEntity},
		{&export.ReplayError{Index: 3, Notation: "Ke3", Err: errors.New("no")}, fiber.StatusUnprocessableEntity},
		{errors.New("disk full"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusOf(tc.err), tc.err.Error())
	}
}
