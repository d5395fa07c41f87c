package dto

// UpdateUserReq represents the form posted to /user/update. Only the password can change.
type UpdateUserReq struct {
	Password string `form:"password" binding:"notblank"`
}
