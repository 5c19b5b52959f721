package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kehadiranku_backend/internals/constants"
	"kehadiranku_backend/internals/domain"
	"kehadiranku_backend/internals/features/attendance/checkins/model"
	sessionmodel "kehadiranku_backend/internals/features/attendance/sessions/model"
	campusmodel "kehadiranku_backend/internals/features/campus/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&campusmodel.CourseModel{},
		&campusmodel.LectureModel{},
		&campusmodel.CourseMemberModel{},
		&sessionmodel.SessionModel{},
		&model.CheckinModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// fixture is one course + lecture with a teacher and a student enrolled.
type fixture struct {
	course  campusmodel.CourseModel
	lecture campusmodel.LectureModel
	teacher uuid.UUID
	student uuid.UUID
}

func seedFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	f := fixture{teacher: uuid.New(), student: uuid.New()}

	f.course = campusmodel.CourseModel{CourseName: "Algorithms"}
	if err := db.Create(&f.course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	f.lecture = campusmodel.LectureModel{LectureCourseID: f.course.CourseID, LectureName: "Sorting"}
	if err := db.Create(&f.lecture).Error; err != nil {
		t.Fatalf("seed lecture: %v", err)
	}
	for _, m := range []campusmodel.CourseMemberModel{
		{CourseMemberCourseID: f.course.CourseID, CourseMemberUserID: f.teacher, CourseMemberRole: constants.RoleTeacher},
		{CourseMemberCourseID: f.course.CourseID, CourseMemberUserID: f.student, CourseMemberRole: constants.RoleStudent},
	} {
		if err := db.Create(&m).Error; err != nil {
			t.Fatalf("enroll: %v", err)
		}
	}
	return f
}

func seedSession(t *testing.T, db *gorm.DB, f fixture, start, end time.Time) sessionmodel.SessionModel {
	t.Helper()
	sess := sessionmodel.SessionModel{
		SessionName:      "Week 1",
		SessionCourseID:  f.course.CourseID,
		SessionLectureID: f.lecture.LectureID,
		SessionTeacherID: f.teacher,
		SessionStart:     start,
		SessionEnd:       end,
	}
	if err := db.Create(&sess).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return sess
}

func enrollStudent(t *testing.T, db *gorm.DB, courseID, userID uuid.UUID) {
	t.Helper()
	member := campusmodel.CourseMemberModel{
		CourseMemberCourseID: courseID,
		CourseMemberUserID:   userID,
		CourseMemberRole:     constants.RoleStudent,
	}
	if err := db.Create(&member).Error; err != nil {
		t.Fatalf("enroll: %v", err)
	}
}

func timePtr(tm time.Time) *time.Time { return &tm }

func TestSelfCheckin_Success_ThenDuplicate(t *testing.T) {
	db := setupDB(t)
	svc := NewCheckinService(db)
	f := seedFixture(t, db)

	now := time.Now()
	sess := seedSession(t, db, f, now.Add(-30*time.Minute), now.Add(30*time.Minute))

	checkin, err := svc.SelfCheckin(context.Background(), f.student, sess.SessionID)
	if err != nil {
		t.Fatalf("SelfCheckin() error = %v", err)
	}
	if checkin.CheckinCourseID != f.course.CourseID || checkin.CheckinLectureID != f.lecture.LectureID {
		t.Error("denormalized course/lecture ids do not match the session")
	}
	if d := time.Since(checkin.CheckinCreatedAt); d < 0 || d > 2*time.Second {
		t.Errorf("created_at = %s, want around now", checkin.CheckinCreatedAt)
	}

	if _, err := svc.SelfCheckin(context.Background(), f.student, sess.SessionID); !errors.Is(err, domain.ErrAlreadyCheckedIn) {
		t.Fatalf("second SelfCheckin() error = %v, want ErrAlreadyCheckedIn", err)
	}

	var count int64
	if err := db.Model(&model.CheckinModel{}).
		Where("checkin_user_id = ? AND checkin_session_id = ?", f.student, sess.SessionID).
		Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("checkin rows = %d, want 1", count)
	}
}

func TestSelfCheckin_WindowStates(t *testing.T) {
	db := setupDB(t)
	svc := NewCheckinService(db)
	f := seedFixture(t, db)
	now := time.Now()

	notStarted := seedSession(t, db, f, now.Add(time.Hour), now.Add(2*time.Hour))
	ended := seedSession(t, db, f, now.Add(-2*time.Hour), now.Add(-time.Hour))

	// the two out-of-window states must never be confused
	if _, err := svc.SelfCheckin(context.Background(), f.student, notStarted.SessionID); !errors.Is(err, domain.ErrSessionNotStarted) {
		t.Errorf("before window: error = %v, want ErrSessionNotStarted", err)
	}
	if _, err := svc.SelfCheckin(context.Background(), f.student, ended.SessionID); !errors.Is(err, domain.ErrSessionEnded) {
		t.Errorf("after window: error = %v, want ErrSessionEnded", err)
	}
}

func TestSelfCheckin_AuthErrors(t *testing.T) {
	db := setupDB(t)
	svc := NewCheckinService(db)
	f := seedFixture(t, db)
	now := time.Now()
	sess := seedSession(t, db, f, now.Add(-time.Hour), now.Add(time.Hour))

	if _, err := svc.SelfCheckin(context.Background(), uuid.New(), sess.SessionID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("non-member: error = %v, want ErrForbidden", err)
	}
	if _, err := svc.SelfCheckin(context.Background(), f.student, uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown session: error = %v, want ErrNotFound", err)
	}
}

// The unique index is the real duplicate guard: inserting the same
// (user, session) pair twice at the storage layer must fail.
func TestCheckinUniqueIndex(t *testing.T) {
	db := setupDB(t)
	f := seedFixture(t, db)
	now := time.Now()
	sess := seedSession(t, db, f, now.Add(-time.Hour), now.Add(time.Hour))

	first := model.CheckinModel{
		CheckinUserID:    f.student,
		CheckinSessionID: sess.SessionID,
		CheckinCourseID:  f.course.CourseID,
		CheckinLectureID: f.lecture.LectureID,
		CheckinCreatedAt: now,
	}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("first insert: %v", err)
	}

	dup := model.CheckinModel{
		CheckinUserID:    f.student,
		CheckinSessionID: sess.SessionID,
		CheckinCourseID:  f.course.CourseID,
		CheckinLectureID: f.lecture.LectureID,
		CheckinCreatedAt: now,
	}
	if err := db.Create(&dup).Error; !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate insert error = %v, want gorm.ErrDuplicatedKey", err)
	}
}

func TestListAttendees(t *testing.T) {
	db := setupDB(t)
	svc := NewCheckinService(db)
	f := seedFixture(t, db)
	now := time.Now()
	sess := seedSession(t, db, f, now.Add(-time.Hour), now.Add(time.Hour))

	if _, err := svc.SelfCheckin(context.Background(), f.student, sess.SessionID); err != nil {
		t.Fatalf("SelfCheckin() error = %v", err)
	}

	attendees, err := svc.ListAttendees(context.Background(), f.teacher, sess.SessionID)
	if err != nil {
		t.Fatalf("ListAttendees() error = %v", err)
	}
	if len(attendees) != 1 || attendees[0].CheckinUserID != f.student {
		t.Fatalf("attendees = %v, want the student's checkin", attendees)
	}

	// listing attendees is an instructor operation
	if _, err := svc.ListAttendees(context.Background(), f.student, sess.SessionID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("student list: error = %v, want ErrForbidden", err)
	}
}

func TestUpsertAttendee_AddThenAmend(t *testing.T) {
	db := setupDB(t)
	svc := NewCheckinService(db)
	f := seedFixture(t, db)
	now := time.Now()

	// the instructor path works outside the live window
	sess := seedSession(t, db, f, now.Add(-3*time.Hour), now.Add(-2*time.Hour))

	backfill := now.Add(-150 * time.Minute)
	checkin, created, err := svc.UpsertAttendee(context.Background(), f.teacher, sess.SessionID, f.student, timePtr(backfill))
	if err != nil {
		t.Fatalf("UpsertAttendee() error = %v", err)
	}
	if !created {
		t.Error("first upsert did not report added")
	}
	if !checkin.CheckinCreatedAt.Equal(backfill) {
		t.Errorf("created_at = %s, want %s", checkin.CheckinCreatedAt, backfill)
	}

	// amending with the same time is idempotent: same row, same timestamp
	checkin, created, err = svc.UpsertAttendee(context.Background(), f.teacher, sess.SessionID, f.student, timePtr(backfill))
	if err != nil {
		t.Fatalf("second UpsertAttendee() error = %v", err)
	}
	if created {
		t.Error("second upsert reported added, want updated")
	}
	if !checkin.CheckinCreatedAt.Equal(backfill) {
		t.Errorf("created_at = %s, want %s", checkin.CheckinCreatedAt, backfill)
	}

	var rows []model.CheckinModel
	if err := db.Where("checkin_user_id = ? AND checkin_session_id = ?", f.student, sess.SessionID).Find(&rows).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("checkin rows = %d, want 1", len(rows))
	}
	if !rows[0].CheckinCreatedAt.Equal(backfill) {
		t.Errorf("persisted created_at = %s, want %s", rows[0].CheckinCreatedAt, backfill)
	}
}

func TestUpsertAttendee_DefaultsToNow(t *testing.T) {
	db := setupDB(t)
	svc := NewCheckinService(db)
	f := seedFixture(t, db)
	now := time.Now()
	sess := seedSession(t, db, f, now.Add(-time.Hour), now.Add(time.Hour))

	checkin, created, err := svc.UpsertAttendee(context.Background(), f.teacher, sess.SessionID, f.student, nil)
	if err != nil {
		t.Fatalf("UpsertAttendee() error = %v", err)
	}
	if !created {
		t.Error("upsert did not report added")
	}
	if d := time.Since(checkin.CheckinCreatedAt); d < 0 || d > 2*time.Second {
		t.Errorf("created_at = %s, want around now", checkin.CheckinCreatedAt)
	}
}

func TestUpsertAttendee_Errors(t *testing.T) {
	db := setupDB(t)
	svc := NewCheckinService(db)
	f := seedFixture(t, db)
	now := time.Now()
	sess := seedSession(t, db, f, now.Add(-time.Hour), now.Add(time.Hour))

	// the override path needs manage permission, enrollment is not enough
	if _, _, err := svc.UpsertAttendee(context.Background(), f.student, sess.SessionID, f.student, nil); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("student upsert: error = %v, want ErrForbidden", err)
	}
	if _, _, err := svc.UpsertAttendee(context.Background(), f.teacher, uuid.New(), f.student, nil); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown session: error = %v, want ErrNotFound", err)
	}
}
