package model

// StudentLoginRequest starts a play session. The teacher name is free text
// and gets fuzzy-matched against the roster.
type StudentLoginRequest struct {
	FirstName   string `json:"first_name" binding:"required,max=100"`
	TeacherName string `json:"teacher_name" binding:"required,max=100"`
}

// StudentLoginResponse returns the session handle and the resolved teacher.
type StudentLoginResponse struct {
	SessionID             string `json:"session_id"`
	FirstName             string `json:"first_name"`
	TeacherName           string `json:"teacher_name"`
	NormalizedTeacherName string `json:"normalized_teacher_name"`
}

// TeacherLoginRequest unlocks the attempt review view.
type TeacherLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// TeacherLoginResponse carries the review token.
type TeacherLoginResponse struct {
	Token string `json:"token"`
}
