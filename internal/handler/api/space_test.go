//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"coworking-reservations/internal/handler/api"
	resdto "coworking-reservations/internal/handler/dto/response"
	"coworking-reservations/internal/pkg/errs"
	"coworking-reservations/internal/usecase/commands"
	"coworking-reservations/internal/usecase/queries"
	"coworking-reservations/tests/common/builder"
	"coworking-reservations/tests/common/httptest"
	"coworking-reservations/tests/common/testutil"
	commandsmock "coworking-reservations/tests/mock/commands"
	queriesmock "coworking-reservations/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SpaceHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	mockCommands     *commandsmock.MockSpaceCommands
	mockQueries      *queriesmock.MockSpaceQueries
	mockReservations *queriesmock.MockReservationQueries
	handler          *api.SpaceHandler
}

func (s *SpaceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSpaceCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSpaceQueries(s.mockCtrl)
	s.mockReservations = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewSpaceHandler(s.mockCommands, s.mockQueries, s.mockReservations)

	s.router.GET("/spaces", s.handler.List)
	s.router.POST("/spaces", s.handler.Create)
	s.router.GET("/spaces/available", s.handler.Available)
	s.router.GET("/spaces/:id", s.handler.Get)
	s.router.PUT("/spaces/:id", s.handler.Update)
	s.router.DELETE("/spaces/:id", s.handler.Delete)
	s.router.GET("/spaces/:id/reservations", s.handler.Reservations)
}

func (s *SpaceHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSpaceHandlerSuite(t *testing.T) {
	suite.Run(t, new(SpaceHandlerTestSuite))
}

func (s *SpaceHandlerTestSuite) TestCreate() {
	b := builder.NewSpaceBuilder()
	reqBody := b.BuildRequestDTO()
	stored := b.BuildStored()
	okResult := &commands.SpaceResult{Success: true, Message: "Space created successfully", Space: stored}

	s.Run("success: returns 201 Created with Location", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), b.BuildInput()).Return(okResult, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/spaces", reqBody)

		var body resdto.SpaceResultResponse
		httptest.AssertResult(s.T(), rec, http.StatusCreated, true, "", &body)
		s.Equal(stored.ID(), body.Space.ID)
		s.Equal([]string{"WiFi", "Tableau blanc"}, body.Space.Amenities)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/spaces/" + stored.ID().String()})
	})

	s.Run("error: 400 Bad Request on binding errors", func() {
		testCases := []testCaseReservation{
			{name: "missing field: name", mutate: testutil.Field("name", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: type", mutate: testutil.Field("type", nil), expectCode: http.StatusBadRequest},
			{name: "capacity boundary invalid (0)", mutate: testutil.Field("capacity", 0), expectCode: http.StatusBadRequest},
			{name: "capacity is not a number", mutate: testutil.Field("capacity", "eight"), expectCode: http.StatusBadRequest},
			{name: "amenities is not a list", mutate: testutil.Field("amenities", "WiFi"), expectCode: http.StatusBadRequest},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/spaces", testutil.DtoMap(s.T(), reqBody, tc.mutate))

				httptest.AssertErrorCode(s.T(), rec, tc.expectCode, "MALFORMED_INPUT")
			})
		}
	})

	s.Run("error: 400 when the domain rejects the attributes", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(&commands.SpaceResult{Code: commands.CodeMalformedInput, Message: "invalid space type"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/spaces",
			testutil.DtoMap(s.T(), reqBody, testutil.Field("type", "GARAGE")))

		httptest.AssertResult(s.T(), rec, http.StatusBadRequest, false, "MALFORMED_INPUT", nil)
	})

	s.Run("error: 500 on command failure", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/spaces", reqBody)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

func (s *SpaceHandlerTestSuite) TestUpdateAndDelete() {
	b := builder.NewSpaceBuilder()
	url := "/spaces/" + b.ID.String()

	s.Run("update: 200 on success", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), b.ID, b.BuildInput()).
			Return(&commands.SpaceResult{Success: true, Message: "Space updated successfully", Space: b.BuildStored()}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, b.BuildRequestDTO())

		httptest.AssertResult(s.T(), rec, http.StatusOK, true, "", nil)
	})

	s.Run("update: 404 for unknown space", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&commands.SpaceResult{Code: commands.CodeNotFound, Message: "Space not found"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, b.BuildRequestDTO())

		httptest.AssertResult(s.T(), rec, http.StatusNotFound, false, "NOT_FOUND", nil)
	})

	s.Run("delete: 200 with the deactivated space", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), b.ID).
			Return(&commands.SpaceResult{Success: true, Message: "Space deleted successfully", Space: b.AsInactive().BuildStored()}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil)

		var body resdto.SpaceResultResponse
		httptest.AssertResult(s.T(), rec, http.StatusOK, true, "", &body)
		s.False(body.Space.IsActive)
	})

	s.Run("delete: 400 on invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/spaces/alpha", nil)

		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "MALFORMED_INPUT")
	})
}

func (s *SpaceHandlerTestSuite) TestQueries() {
	view := builder.NewSpaceBuilder().BuildView()

	s.Run("list", func() {
		s.mockQueries.EXPECT().List(gomock.Any()).Return([]*queries.SpaceView{view}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/spaces", nil)

		var body []resdto.SpaceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 1)
		s.Equal(view.Name, body[0].Name)
	})

	s.Run("get: 404 for unknown space", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errs.ErrSpaceNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/spaces/"+uuid.NewString(), nil)

		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "NOT_FOUND")
	})

	s.Run("available", func() {
		start, end := builder.At(0, 10, 0), builder.At(0, 11, 0)
		s.mockQueries.EXPECT().Available(gomock.Any(), start, end).Return([]*queries.SpaceView{view}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/spaces/available?startTime="+start.Format(time.RFC3339)+"&endTime="+end.Format(time.RFC3339), nil)

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("available: 400 without both bounds", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/spaces/available?startTime="+builder.At(0, 10, 0).Format(time.RFC3339), nil)

		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "MALFORMED_INPUT")
	})

	s.Run("available: 400 on an empty window", func() {
		at := builder.At(0, 10, 0)
		s.mockQueries.EXPECT().Available(gomock.Any(), at, at).
			Return(nil, errs.Mark(errs.New("endTime must be after startTime"), errs.ErrMalformedInput)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/spaces/available?startTime="+at.Format(time.RFC3339)+"&endTime="+at.Format(time.RFC3339), nil)

		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "MALFORMED_INPUT")
	})

	s.Run("reservations: narrowed to a day", func() {
		day := queries.Day{Year: 2030, Month: time.June, Day: 4}
		s.mockReservations.EXPECT().ListBySpace(gomock.Any(), view.ID, &day).
			Return([]*queries.ReservationView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/spaces/"+view.ID.String()+"/reservations?date=2030-06-04", nil)

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq("[]", rec.Body.String())
	})

	s.Run("reservations: all days", func() {
		s.mockReservations.EXPECT().ListBySpace(gomock.Any(), view.ID, gomock.Nil()).
			Return([]*queries.ReservationView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/spaces/"+view.ID.String()+"/reservations", nil)

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("reservations: 400 on a malformed date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/spaces/"+view.ID.String()+"/reservations?date=04-06-2030", nil)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid date")
	})

	s.Run("reservations: 404 for unknown space", func() {
		s.mockReservations.EXPECT().ListBySpace(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrSpaceNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/spaces/"+uuid.NewString()+"/reservations", nil)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Space not found")
	})
}
