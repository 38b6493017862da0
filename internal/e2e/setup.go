//go:build integration

package e2e

import (
	"database/sql"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/allan6757/Hospitali/internal/booking"
	"github.com/allan6757/Hospitali/internal/doctor"
	httpserver "github.com/allan6757/Hospitali/internal/http"
	"github.com/allan6757/Hospitali/internal/patient"
	"github.com/allan6757/Hospitali/internal/report"
	"github.com/allan6757/Hospitali/internal/testutil"
)

// TestServer is the full HTTP stack over a throwaway clinic schema.
type TestServer struct {
	Server        *httptest.Server
	DB            *sql.DB
	Schema        string
	MockPublisher *testutil.MockPublisher
}

// SetupE2ETest wires real repositories, services and router against
// PostgreSQL, with events captured in memory.
func SetupE2ETest(t *testing.T) *TestServer {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	schema := testutil.SetupTestSchema(t, conn)
	publisher := testutil.NewMockPublisher()
	logger := zerolog.Nop()

	patientRepo := patient.NewRepository(conn, schema)
	doctorRepo := doctor.NewRepository(conn, schema)

	patients := patient.NewService(patientRepo, publisher, nil, logger)
	doctors := doctor.NewService(doctorRepo, publisher, nil, logger)
	reports := report.NewService(report.NewRepository(conn, schema), patientRepo, publisher, nil, logger)
	workflow := booking.NewWorkflow(patientRepo, doctorRepo, publisher, nil, logger)

	router := httpserver.SetupRouter(httpserver.Handlers{
		Patients: patient.NewHandler(patients),
		Doctors:  doctor.NewHandler(doctors),
		Reports:  report.NewHandler(reports),
		Bookings: booking.NewHandler(workflow),
	}, nil, "hospitali-test", []string{"*"})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{
		Server:        server,
		DB:            conn,
		Schema:        schema,
		MockPublisher: publisher,
	}
}

func (ts *TestServer) NewClient() *testutil.HTTPTestClient {
	return testutil.NewHTTPTestClient(ts.Server.URL)
}
