package app

import (
	"context"
	"io"
	"testing"

	"github.com/Temutjin2k/fitness-connect/config"
	"github.com/Temutjin2k/fitness-connect/internal/domain/types"
	"github.com/Temutjin2k/fitness-connect/pkg/logger"
	"github.com/stretchr/testify/require"
)

func TestNewApplication_InvalidMode(t *testing.T) {
	_, err := NewApplication(context.Background(), config.Config{Mode: "payments-service"}, logger.New(io.Discard, "test", logger.LevelInfo))
	require.ErrorIs(t, err, ErrInvalidMode)
}

func TestRun_NotInitialized(t *testing.T) {
	require.ErrorIs(t, (&App{mode: types.BookingService}).Run(context.Background()), ErrServiceNotInitialized)
}
