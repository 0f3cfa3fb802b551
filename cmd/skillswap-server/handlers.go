package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skillswap/skillswap/internal/auth"
	"github.com/skillswap/skillswap/internal/karma"
	"github.com/skillswap/skillswap/internal/skills"
	"github.com/skillswap/skillswap/internal/swaps"
	"github.com/skillswap/skillswap/internal/users"
)

// Auth handlers

func signUp(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req auth.SignUpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		session, err := as.AuthService.SignUp(c.Request.Context(), &req)
		if err != nil {
			as.Logger.Error("Failed to sign up", zap.Error(err))
			c.JSON(authErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		// The profile row is created alongside the credential so the new
		// member is immediately visible to the marketplace.
		user, err := as.UserService.Create(c.Request.Context(), &users.CreateUserRequest{
			UserID: session.UserID,
			Email:  strings.ToLower(strings.TrimSpace(req.Email)),
			Name:   req.Name,
		})
		if err != nil {
			as.Logger.Error("Failed to create user profile", zap.String("user_id", session.UserID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user profile"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"session": session,
			"user":    user,
		})
	}
}

func signIn(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req auth.SignInRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		session, err := as.AuthService.SignIn(c.Request.Context(), &req)
		if err != nil {
			as.Logger.Warn("Failed sign-in attempt", zap.Error(err))
			c.JSON(authErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"session": session})
	}
}

func signOut(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		if err := as.AuthService.SignOut(c.Request.Context(), token); err != nil {
			as.Logger.Error("Failed to sign out", zap.Error(err))
			c.JSON(authErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Signed out successfully"})
	}
}

func currentUser(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := auth.ActorID(c)
		if actorID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		user, err := as.UserService.Get(c.Request.Context(), actorID)
		if err != nil {
			as.Logger.Error("Failed to load current user", zap.String("user_id", actorID), zap.Error(err))
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// Profile handlers

func browseProfiles(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		skillFilter := c.Query("skill")

		profiles, err := as.UserService.BrowseProfiles(c.Request.Context(), skillFilter)
		if err != nil {
			as.Logger.Error("Failed to browse profiles", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to browse profiles"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"profiles": profiles,
			"count":    len(profiles),
		})
	}
}

func getProfile(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId parameter is required"})
			return
		}

		profile, err := as.UserService.GetProfile(c.Request.Context(), userID)
		if err != nil {
			as.Logger.Error("Failed to get profile", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}

		c.JSON(http.StatusOK, profile)
	}
}

func updateProfile(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")
		actorID := auth.ActorID(c)

		var req users.UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		user, err := as.UserService.UpdateProfile(c.Request.Context(), actorID, userID, &req)
		if err != nil {
			as.Logger.Error("Failed to update profile", zap.String("user_id", userID), zap.Error(err))
			if strings.Contains(err.Error(), "does not belong to") {
				c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
				return
			}
			if strings.Contains(err.Error(), "not found") {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// Skill handlers

func addSkill(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req skills.AddSkillRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		skill, err := as.SkillService.Add(c.Request.Context(), auth.ActorID(c), &req)
		if err != nil {
			as.Logger.Error("Failed to add skill", zap.Error(err))
			var dup *skills.ErrDuplicateSkill
			if errors.As(err, &dup) {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, skill)
	}
}

func removeSkill(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		skillID := c.Param("skillId")
		if skillID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "skillId parameter is required"})
			return
		}

		if err := as.SkillService.Remove(c.Request.Context(), auth.ActorID(c), skillID); err != nil {
			as.Logger.Error("Failed to remove skill", zap.String("skill_id", skillID), zap.Error(err))
			if strings.Contains(err.Error(), "not found") {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove skill"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Skill removed successfully"})
	}
}

// Karma handler

func getKarma(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId parameter is required"})
			return
		}

		ctx := c.Request.Context()

		user, err := as.UserService.Get(ctx, userID)
		if err != nil {
			as.Logger.Error("Failed to get user for karma", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		history, err := as.SwapService.ListForUser(ctx, userID)
		if err != nil {
			as.Logger.Error("Failed to load swap history", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute karma"})
			return
		}

		calc := karma.Calculate(user.Rating, user.ResponseTimeHours, exchangeStatuses(history))

		// Cache the result on the user row for list views. Display still
		// works when the write fails, so only log.
		if err := as.UserService.RecordKarma(ctx, userID, calc.TotalKarma, calc.Level); err != nil {
			as.Logger.Warn("Failed to cache karma", zap.String("user_id", userID), zap.Error(err))
		}

		c.JSON(http.StatusOK, calc)
	}
}

// exchangeStatuses maps swap history to the reputation engine's exchange
// vocabulary. An accepted swap is a consummated exchange.
func exchangeStatuses(history []*swaps.SwapRequest) []string {
	statuses := make([]string, len(history))
	for i, swap := range history {
		if swap.Status == swaps.StatusAccepted {
			statuses[i] = karma.StatusCompleted
		} else {
			statuses[i] = string(swap.Status)
		}
	}
	return statuses
}

// Swap handlers

func createSwap(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req swaps.CreateSwapRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		swap, err := as.SwapService.Create(c.Request.Context(), auth.ActorID(c), &req)
		if err != nil {
			as.Logger.Error("Failed to create swap request", zap.Error(err))
			c.JSON(swapErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		as.Metrics.SwapCreated()
		c.JSON(http.StatusCreated, swap)
	}
}

func listSwaps(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := auth.ActorID(c)

		swapList, err := as.SwapService.ListForUser(c.Request.Context(), actorID)
		if err != nil {
			as.Logger.Error("Failed to list swap requests", zap.String("user_id", actorID), zap.Error(err))
			c.JSON(swapErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		incoming := make([]*swaps.SwapRequest, 0, len(swapList))
		outgoing := make([]*swaps.SwapRequest, 0, len(swapList))
		for _, swap := range swapList {
			if swap.ToUserID == actorID {
				incoming = append(incoming, swap)
			} else {
				outgoing = append(outgoing, swap)
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"incoming": incoming,
			"outgoing": outgoing,
			"count":    len(swapList),
		})
	}
}

func transitionSwap(as *AppState, target swaps.Status) gin.HandlerFunc {
	return func(c *gin.Context) {
		swapID := c.Param("swapId")
		actorID := auth.ActorID(c)

		var swap *swaps.SwapRequest
		var err error
		ctx := c.Request.Context()

		switch target {
		case swaps.StatusAccepted:
			swap, err = as.SwapService.Accept(ctx, actorID, swapID)
		case swaps.StatusRejected:
			swap, err = as.SwapService.Reject(ctx, actorID, swapID)
		case swaps.StatusCancelled:
			swap, err = as.SwapService.Cancel(ctx, actorID, swapID)
		}

		if err != nil {
			as.Logger.Error("Failed to transition swap request",
				zap.String("swap_id", swapID),
				zap.String("target_status", string(target)),
				zap.Error(err))
			c.JSON(swapErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		as.Metrics.SwapTransition(string(target))
		c.JSON(http.StatusOK, swap)
	}
}

// Error mapping

func swapErrorStatus(err error) int {
	switch swaps.ErrorType(err) {
	case swaps.ErrorTypeValidationFailed:
		return http.StatusBadRequest
	case swaps.ErrorTypeNotAuthenticated:
		return http.StatusUnauthorized
	case swaps.ErrorTypeNotAuthorized:
		return http.StatusForbidden
	case swaps.ErrorTypeInvalidTransition:
		return http.StatusConflict
	case swaps.ErrorTypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func authErrorStatus(err error) int {
	switch auth.ErrorType(err) {
	case auth.ErrorTypeValidationFailed:
		return http.StatusBadRequest
	case auth.ErrorTypeEmailTaken:
		return http.StatusConflict
	case auth.ErrorTypeInvalidCredentials, auth.ErrorTypeInvalidToken:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
