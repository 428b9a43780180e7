package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"timeclass-backend/internal/mailer"
	"timeclass-backend/internal/model"
	"timeclass-backend/internal/repository"
	"timeclass-backend/internal/ws"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeClaimRepo struct {
	existing *model.Claim
	txErr    error
	created  *model.Claim
}

func (f *fakeClaimRepo) CreateWithRejection(claim *model.Claim) (*model.WorkHour, error) {
	if f.txErr != nil {
		return nil, f.txErr
	}
	f.created = claim
	claim.ID = 77
	wh := &model.WorkHour{TeacherID: claim.TeacherID, Status: model.StatusRejected, Claim: claim}
	wh.ID = claim.WorkHourID
	return wh, nil
}

func (f *fakeClaimRepo) GetByID(id uint) (*model.Claim, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeClaimRepo) GetByWorkHourID(workHourID uint) (*model.Claim, error) {
	if f.existing != nil {
		return f.existing, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeWorkHourRepo struct {
	record *model.WorkHour
}

func (f *fakeWorkHourRepo) Create(*model.WorkHour) error        { return nil }
func (f *fakeWorkHourRepo) CreateMany([]model.WorkHour) error   { return nil }
func (f *fakeWorkHourRepo) GetAll(string, string, uint) ([]model.WorkHour, error) {
	return nil, nil
}
func (f *fakeWorkHourRepo) GetByTeacherID(uint) ([]model.WorkHour, error) { return nil, nil }
func (f *fakeWorkHourRepo) GetExpiredPending(time.Time) ([]model.WorkHour, error) {
	return nil, nil
}
func (f *fakeWorkHourRepo) Update(*model.WorkHour) error { return nil }
func (f *fakeWorkHourRepo) Delete(uint) error            { return nil }

func (f *fakeWorkHourRepo) GetByID(id uint) (*model.WorkHour, error) {
	if f.record == nil || f.record.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.record, nil
}

type fakeTeacherRepo struct{}

func (fakeTeacherRepo) Create(*model.Teacher) error                   { return nil }
func (fakeTeacherRepo) GetByID(uint) (*model.Teacher, error)          { return &model.Teacher{Name: "Maria"}, nil }
func (fakeTeacherRepo) GetByDocument(string) (*model.Teacher, error)  { return nil, gorm.ErrRecordNotFound }
func (fakeTeacherRepo) GetAll() ([]model.Teacher, error)              { return nil, nil }
func (fakeTeacherRepo) Update(*model.Teacher) error                   { return nil }
func (fakeTeacherRepo) Delete(uint) error                             { return nil }

type fakeCommentRepo struct{}

func (fakeCommentRepo) Create(c *model.Comment) (*model.Comment, bool, error) { return c, true, nil }
func (fakeCommentRepo) GetByClaimID(uint) ([]model.Comment, error)            { return nil, nil }

// claimApp wires the claim handler behind a locals stub standing in
// for the auth middleware.
func claimApp(claims repository.ClaimRepository, workhours repository.WorkHourRepository, role string, teacherID uint) *fiber.App {
	hdl := NewClaimHandler(
		claims,
		fakeCommentRepo{},
		fakeTeacherRepo{},
		workhours,
		ws.NewHub(zap.NewNop()),
		mailer.New("", 0, "", "", "", "", zap.NewNop()),
	)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", float64(10))
		c.Locals("name", "Maria")
		c.Locals("role", role)
		c.Locals("teacher_id", float64(teacherID))
		return c.Next()
	})
	app.Post("/claims", hdl.Create)
	return app
}

func postClaim(t *testing.T, app *fiber.App, body map[string]interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, "/claims", bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func pendingRecord(id, teacherID uint) *model.WorkHour {
	wh := &model.WorkHour{TeacherID: teacherID, Status: model.StatusPending}
	wh.ID = id
	return wh
}

func TestCreateClaimFlipsPendingRecord(t *testing.T) {
	claims := &fakeClaimRepo{}
	app := claimApp(claims, &fakeWorkHourRepo{record: pendingRecord(5, 3)}, model.RoleTeacher, 3)

	resp := postClaim(t, app, map[string]interface{}{
		"teacher_id": 3, "work_hour_id": 5, "title": "Wrong hours", "description": "Taught 8, recorded 6",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out struct {
		WorkHour model.WorkHour `json:"work_hour"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, model.StatusRejected, out.WorkHour.Status)
}

func TestCreateClaimForAnotherTeachersRecord(t *testing.T) {
	// Record 5 belongs to teacher 9; the caller is teacher 3. A
	// body claiming teacher_id 3 must not get past the gate.
	claims := &fakeClaimRepo{}
	app := claimApp(claims, &fakeWorkHourRepo{record: pendingRecord(5, 9)}, model.RoleTeacher, 3)

	resp := postClaim(t, app, map[string]interface{}{
		"teacher_id": 3, "work_hour_id": 5, "title": "Not mine", "description": "d",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Nil(t, claims.created)
}

func TestCreateClaimOwnerTakenFromRecord(t *testing.T) {
	// Admins can file on behalf of a teacher, but the claim is always
	// attributed to the record's owner, whatever the body says.
	claims := &fakeClaimRepo{}
	app := claimApp(claims, &fakeWorkHourRepo{record: pendingRecord(5, 9)}, model.RoleAdmin, 0)

	resp := postClaim(t, app, map[string]interface{}{
		"teacher_id": 3, "work_hour_id": 5, "title": "On behalf", "description": "d",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.NotNil(t, claims.created)
	assert.EqualValues(t, 9, claims.created.TeacherID)
}

func TestCreateClaimAcceptedRecordConflicts(t *testing.T) {
	accepted := pendingRecord(5, 3)
	accepted.Status = model.StatusAccepted
	claims := &fakeClaimRepo{txErr: repository.ErrRecordNotDisputable}
	app := claimApp(claims, &fakeWorkHourRepo{record: accepted}, model.RoleTeacher, 3)

	resp := postClaim(t, app, map[string]interface{}{
		"teacher_id": 3, "work_hour_id": 5, "title": "Too late", "description": "d",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestCreateClaimDuplicateConflicts(t *testing.T) {
	existing := &model.Claim{WorkHourID: 5, TeacherID: 3}
	existing.ID = 42
	claims := &fakeClaimRepo{existing: existing}
	app := claimApp(claims, &fakeWorkHourRepo{record: pendingRecord(5, 3)}, model.RoleTeacher, 3)

	resp := postClaim(t, app, map[string]interface{}{
		"teacher_id": 3, "work_hour_id": 5, "title": "Again", "description": "d",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Nil(t, claims.created)
}

func TestCreateClaimMissingRecord(t *testing.T) {
	app := claimApp(&fakeClaimRepo{}, &fakeWorkHourRepo{}, model.RoleTeacher, 3)

	resp := postClaim(t, app, map[string]interface{}{
		"teacher_id": 3, "work_hour_id": 5, "title": "Ghost", "description": "d",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
