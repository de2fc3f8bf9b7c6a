package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleStudent    = "student"
	RoleCounsellor = "counsellor"
	RoleAdmin      = "admin"
)

// Appointment statuses
const (
	AppointmentUpcoming  = "upcoming"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// User represents a platform account (student, counsellor or admin)
type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	Email             string             `bson:"email" json:"email"`
	PasswordHash      string             `bson:"passwordHash" json:"-"`
	Role              string             `bson:"role" json:"role"`
	University        string             `bson:"university,omitempty" json:"university,omitempty"`
	IsActive          bool               `bson:"isActive" json:"isActive"`
	AssignedCounselor primitive.ObjectID `bson:"assignedCounselor,omitempty" json:"assignedCounselor,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserRef is the projection of a user embedded in counsellor and admin views.
type UserRef struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
}

// Appointment links a student and a counsellor at a scheduled slot.
// Status transitions are one-way: upcoming -> completed | cancelled.
type Appointment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	CounsellorID primitive.ObjectID `bson:"counsellor" json:"counsellor"`
	Type         string             `bson:"type" json:"type"`
	Date         time.Time          `bson:"date" json:"date"`
	Time         string             `bson:"time" json:"time"`
	Status       string             `bson:"status" json:"status"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// MoodEntry is a daily wellness check-in owned by a single student.
type MoodEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Date      string             `bson:"date" json:"date"`
	Mood      string             `bson:"mood" json:"mood"`
	Stress    int                `bson:"stress" json:"stress"`
	Sleep     float64            `bson:"sleep" json:"sleep"`
	Energy    int                `bson:"energy" json:"energy"`
	Exercise  bool               `bson:"exercise" json:"exercise"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Assessment is an immutable questionnaire submission. Score, severity,
// interpretation and recommendations are computed server-side; the owner is
// always the authenticated submitter.
type Assessment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	Type            string             `bson:"type" json:"type"`
	Score           int                `bson:"score" json:"score"`
	Severity        string             `bson:"severity" json:"severity"`
	Interpretation  string             `bson:"interpretation" json:"interpretation"`
	Recommendations []string           `bson:"recommendations" json:"recommendations"`
	Answers         []int              `bson:"answers" json:"answers"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// ForumReply is embedded in its parent post.
type ForumReply struct {
	Content    string             `bson:"content" json:"content"`
	AuthorName string             `bson:"authorName" json:"authorName"`
	Anonymous  bool               `bson:"anonymous" json:"anonymous"`
	UserID     primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// ForumPost is a peer-support thread with embedded replies.
type ForumPost struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title      string             `bson:"title" json:"title"`
	Content    string             `bson:"content" json:"content"`
	Category   string             `bson:"category" json:"category"`
	Tags       []string           `bson:"tags" json:"tags"`
	Anonymous  bool               `bson:"anonymous" json:"anonymous"`
	AuthorID   primitive.ObjectID `bson:"authorId,omitempty" json:"authorId,omitempty"`
	AuthorName string             `bson:"authorName" json:"authorName"`
	Likes      int                `bson:"likes" json:"likes"`
	Views      int                `bson:"views" json:"views"`
	Replies    []ForumReply       `bson:"replies" json:"replies"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Resource is a library item (video, article, audio or infographic).
type Resource struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	Category      string             `bson:"category" json:"category"`
	Type          string             `bson:"type" json:"type"`
	Language      string             `bson:"language" json:"language"`
	Icon          string             `bson:"icon,omitempty" json:"icon,omitempty"`
	Duration      string             `bson:"duration,omitempty" json:"duration,omitempty"`
	Likes         int                `bson:"likes" json:"likes"`
	Views         int                `bson:"views" json:"views"`
	Content       string             `bson:"content" json:"content"`
	VideoURL      string             `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	AudioURL      string             `bson:"audioUrl,omitempty" json:"audioUrl,omitempty"`
	ImageURL      string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Author        string             `bson:"author" json:"author"`
	PublishedDate string             `bson:"publishedDate" json:"publishedDate"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// Comment is attached to a resource.
type Comment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ResourceID string             `bson:"resourceId" json:"resourceId"`
	Author     string             `bson:"author" json:"author"`
	Text       string             `bson:"text" json:"text"`
	Timestamp  string             `bson:"timestamp" json:"timestamp"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// Notification is an in-app message for a single user.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Title     string             `bson:"title" json:"title"`
	Message   string             `bson:"message" json:"message"`
	Type      string             `bson:"type" json:"type"`
	Link      string             `bson:"link,omitempty" json:"link,omitempty"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// CounselorClient is the counsellor-student care relationship.
type CounselorClient struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CounselorID     primitive.ObjectID `bson:"counselorId" json:"counselorId"`
	ClientID        primitive.ObjectID `bson:"clientId" json:"clientId"`
	Client          *UserRef           `bson:"client,omitempty" json:"client,omitempty"`
	PrimaryIssue    string             `bson:"primaryIssue" json:"primaryIssue"`
	Status          string             `bson:"status" json:"status"`
	StartDate       time.Time          `bson:"startDate" json:"startDate"`
	LastSessionDate *time.Time         `bson:"lastSessionDate,omitempty" json:"lastSessionDate,omitempty"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CounselorNote is a session note; readable by its counsellor (or admin) only.
type CounselorNote struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CounselorID primitive.ObjectID `bson:"counselorId" json:"counselorId"`
	ClientID    primitive.ObjectID `bson:"clientId" json:"clientId"`
	Content     string             `bson:"content" json:"content"`
	SessionDate time.Time          `bson:"sessionDate" json:"sessionDate"`
	FollowUp    string             `bson:"followUp,omitempty" json:"followUp,omitempty"`
	KeyPoints   []string           `bson:"keyPoints" json:"keyPoints"`
	Mood        string             `bson:"mood" json:"mood"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// ContactRequest is a "connect me with a counsellor" ticket.
type ContactRequest struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Source    string             `bson:"source" json:"source"`
	Message   string             `bson:"message" json:"message"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
