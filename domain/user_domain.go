package domain

import "time"

var (
	MessageSuccessRegister      = "User registered successfully"
	MessageSuccessLogin         = "Login successful"
	MessageSuccessGetUser       = "User retrieved successfully"
	MessageSuccessGetUsers      = "Users retrieved successfully"
	MessageSuccessUpdateProfile = "Profile updated successfully"
	MessageSuccessUploadAvatar  = "Avatar uploaded successfully"
	MessageSuccessDeactivate    = "Account deactivated successfully"

	MessageSuccessApplyManager       = "Manager application submitted"
	MessageSuccessGetApplications    = "Manager applications retrieved successfully"
	MessageSuccessApproveApplication = "Manager application approved"
	MessageSuccessRejectApplication  = "Manager application rejected"
	MessageSuccessUpdateRole         = "User role updated successfully"

	MessageFailedRegister      = "Failed to register user"
	MessageFailedLogin         = "Failed to login"
	MessageFailedGetUser       = "Failed to retrieve user"
	MessageFailedUpdateProfile = "Failed to update profile"
	MessageFailedUploadAvatar  = "Failed to upload avatar"
	MessageFailedDeactivate    = "Failed to deactivate account"

	MessageFailedApplyManager      = "Failed to submit manager application"
	MessageFailedGetApplications   = "Failed to retrieve manager applications"
	MessageFailedDecideApplication = "Failed to process manager application"
	MessageFailedUpdateRole        = "Failed to update user role"

	ErrEmailAlreadyRegistered = NewError(KindConflict, "Email already registered")
	ErrInvalidCredentials     = NewError(KindUnauthenticated, "Invalid email or password")
	ErrAccountDeactivated     = NewError(KindForbidden, "Account is deactivated")
	ErrUserNotFound           = NewError(KindNotFound, "User not found")
	ErrOAuthProvider          = NewError(KindInvalid, "Unsupported OAuth provider")
	ErrOAuthState             = NewError(KindUnauthenticated, "OAuth state mismatch")
	ErrOAuthProfile           = NewError(KindUnavailable, "Failed to fetch OAuth profile")
	ErrNotVolunteer           = NewError(KindRejected, "Only volunteers can apply for the manager role")
	ErrApplicationPending     = NewError(KindRejected, "Manager application already pending")
	ErrNoPendingApplication   = NewError(KindNotFound, "No pending manager application")
	ErrInvalidRole            = NewError(KindInvalid, "Invalid role")
	ErrChangeOwnRole          = NewError(KindRejected, "You cannot change your own role")
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required,max=100"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
		Phone    string `json:"phone" validate:"omitempty,phone"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	UpdateProfileRequest struct {
		Name      string `json:"name" validate:"omitempty,max=100"`
		Phone     string `json:"phone" validate:"omitempty,phone"`
		Address   string `json:"address" validate:"omitempty,max=300"`
		Bio       string `json:"bio" validate:"omitempty,max=500"`
		Avatar    string `json:"avatar" validate:"omitempty,url"`
		BloodType string `json:"bloodType" validate:"omitempty,bloodtype"`
	}

	ManagerApplicationRequest struct {
		Reason string `json:"reason" validate:"omitempty,max=500"`
	}

	UpdateRoleRequest struct {
		Role string `json:"role" validate:"required,oneof=volunteer manager admin"`
	}

	UserListFilter struct {
		Role          string
		RequestedRole string
		PageQuery
	}

	UserResponse struct {
		ID               string     `json:"id"`
		Name             string     `json:"name"`
		Email            string     `json:"email"`
		Role             Role       `json:"role"`
		Phone            string     `json:"phone,omitempty"`
		Address          string     `json:"address,omitempty"`
		BloodType        string     `json:"bloodType,omitempty"`
		Avatar           string     `json:"avatar,omitempty"`
		Bio              string     `json:"bio,omitempty"`
		IsActive         bool       `json:"isActive"`
		Verified         bool       `json:"verified"`
		LastLogin        *time.Time `json:"lastLogin,omitempty"`
		EventsCompleted  int        `json:"eventsCompleted"`
		HoursContributed float64    `json:"hoursContributed"`
		RequestedRole    Role       `json:"requestedRole,omitempty"`
		RoleRequestedAt  *time.Time `json:"roleRequestedAt,omitempty"`
		CreatedAt        time.Time  `json:"createdAt"`
		UpdatedAt        time.Time  `json:"updatedAt"`
	}

	// UserSummary is the shape of a user embedded in another resource.
	UserSummary struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Email  string `json:"email,omitempty"`
		Avatar string `json:"avatar,omitempty"`
	}

	AuthResponse struct {
		User  UserResponse `json:"user"`
		Token string       `json:"token"`
	}

	UsersResponse struct {
		Users      []UserResponse `json:"users"`
		Pagination Pagination     `json:"pagination"`
	}

	// OAuthProfile is the provider-neutral identity returned by an OAuth callback.
	OAuthProfile struct {
		Provider   string
		ProviderID string
		Email      string
		Name       string
		Avatar     string
	}
)
