package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Subscription is the billing state embedded in a user document. Whether it is
// active is derived from EndDate at read time, never persisted.
type Subscription struct {
	Plan      string    `json:"plan,omitempty" bson:"plan,omitempty"`
	StartDate time.Time `json:"startDate,omitempty" bson:"start_date,omitempty"`
	EndDate   time.Time `json:"endDate,omitempty" bson:"end_date,omitempty"`
}

// ActiveAt reports whether the subscription covers the given instant.
func (s Subscription) ActiveAt(now time.Time) bool {
	return !s.EndDate.IsZero() && now.Before(s.EndDate)
}

// Progress tracks a user's completion state for one course. One record per
// (user, course) pair; uniqueness is enforced by the service layer.
type Progress struct {
	CourseID         string    `json:"courseId" bson:"course_id"`
	CompletedLessons []string  `json:"completedLessons" bson:"completed_lessons"`
	LastAccessed     time.Time `json:"lastAccessed" bson:"last_accessed"`
}

// User models an account in the system.
type User struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         string       `json:"role"`
	Subscription Subscription `json:"subscription"`
	Progress     []Progress   `json:"-"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// ProgressFor returns the user's progress record for a course, if any.
func (u *User) ProgressFor(courseID string) (*Progress, bool) {
	for i := range u.Progress {
		if u.Progress[i].CourseID == courseID {
			return &u.Progress[i], true
		}
	}
	return nil, false
}

// DeviceLimit is the maximum number of active devices per user. Login from an
// additional device is rejected until one is deactivated.
const DeviceLimit = 2

// Device is a session-limiting record owned by a user.
type Device struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"userId" bson:"user_id"`
	DeviceID  string    `json:"deviceId" bson:"device_id"`
	Name      string    `json:"name" bson:"name"`
	Active    bool      `json:"active" bson:"active"`
	LastSeen  time.Time `json:"lastSeen" bson:"last_seen"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}
