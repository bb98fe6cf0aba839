package unlock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	domainerrs "github.com/yorby-ai/entitlement-service/internal/domain/error"
	portuse "github.com/yorby-ai/entitlement-service/internal/domain/port/usecase"
	mcore "github.com/yorby-ai/entitlement-service/mocks/port/core"
	mevents "github.com/yorby-ai/entitlement-service/mocks/port/events"
	mpers "github.com/yorby-ai/entitlement-service/mocks/port/persistence"
)

func TestIncidentReporterPersistsAndAlerts(t *testing.T) {
	ctx := context.Background()
	reqCtx := portuse.RequestContext{UserID: "user-42", RequestID: "req-1"}
	now := time.Now()

	mockIncidentRepo := new(mpers.MockUnlockIncidentRepository)
	mockPublisher := new(mevents.MockPublisher)
	mockTimeProvider := new(mcore.MockTimeProvider)
	mockLogger := new(mcore.MockLogger)

	mockTimeProvider.On("Now").Return(now)
	mockLogger.On("Error", mock.Anything, mock.Anything).Maybe()

	mockIncidentRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.UnlockIncident")).Return(nil)
	mockPublisher.On("PublishUnlockIncident", mock.Anything, mock.AnythingOfType("events.UnlockIncidentEvent")).Return(nil)

	reporter := NewIncidentReporter(mockIncidentRepo, mockPublisher, mockTimeProvider, mockLogger)
	reporter.Report(ctx, reqCtx, "res-1", "compensation write failed")

	mockIncidentRepo.AssertCalled(t, "Create", mock.Anything, mock.AnythingOfType("*entity.UnlockIncident"))
	mockPublisher.AssertCalled(t, "PublishUnlockIncident", mock.Anything, mock.AnythingOfType("events.UnlockIncidentEvent"))
}

func TestIncidentReporterStillAlertsWhenTheRowWriteFails(t *testing.T) {
	ctx := context.Background()
	reqCtx := portuse.RequestContext{UserID: "user-42", RequestID: "req-1"}
	now := time.Now()

	mockIncidentRepo := new(mpers.MockUnlockIncidentRepository)
	mockPublisher := new(mevents.MockPublisher)
	mockTimeProvider := new(mcore.MockTimeProvider)
	mockLogger := new(mcore.MockLogger)

	mockTimeProvider.On("Now").Return(now)
	mockLogger.On("Error", mock.Anything, mock.Anything).Maybe()

	mockIncidentRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.UnlockIncident")).
		Return(domainerrs.ErrDatabaseConnection)
	mockPublisher.On("PublishUnlockIncident", mock.Anything, mock.AnythingOfType("events.UnlockIncidentEvent")).Return(nil)

	reporter := NewIncidentReporter(mockIncidentRepo, mockPublisher, mockTimeProvider, mockLogger)
	reporter.Report(ctx, reqCtx, "res-1", "compensation write failed")

	// The broker alert is the operator's fallback when the row is lost.
	mockPublisher.AssertCalled(t, "PublishUnlockIncident", mock.Anything, mock.AnythingOfType("events.UnlockIncidentEvent"))
}
