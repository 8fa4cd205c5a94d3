package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"whiteboardLabeler/configs"
	"whiteboardLabeler/internal/enums"
	"whiteboardLabeler/internal/interfaces"
	"whiteboardLabeler/internal/models"
	"whiteboardLabeler/internal/utils"
)

type AuthenticationService struct {
	contractorRepo interfaces.LabelingRepository
	mode           string
	secret         []byte
	log            *zap.Logger
	now            func() time.Time
}

func NewAuthenticationService(
	contractorRepo interfaces.LabelingRepository,
	config *configs.Config,
	log *zap.Logger,
) *AuthenticationService {
	mode := config.Viper.GetString("session.mode")
	if mode != enums.SESSION_MODE_JWT {
		mode = enums.SESSION_MODE_PLAIN
	}
	secret := []byte(config.Viper.GetString("session.secret"))
	if mode == enums.SESSION_MODE_JWT && len(secret) == 0 {
		log.Warn("session.mode is jwt but session.secret is empty; tokens are signed with an empty key")
	}
	return &AuthenticationService{
		contractorRepo: contractorRepo,
		mode:           mode,
		secret:         secret,
		log:            log,
		now:            now,
	}
}

// Authenticate registers name on first sight and returns the session token
// to store in the cookie. name must already be validated.
func (as *AuthenticationService) Authenticate(ctx context.Context, name string) (*models.Contractor, string, error) {
	contractor, created, err := as.contractorRepo.CreateContractorIfAbsent(ctx, name, as.now())
	if err != nil {
		return nil, "", err
	}
	if created {
		as.log.Info("registered contractor", zap.String("contractor", name))
	}

	token, err := utils.CreateSessionToken(as.mode, name, as.secret)
	if err != nil {
		return nil, "", err
	}
	return contractor, token, nil
}

// CurrentSession resolves a cookie value to a contractor name.
func (as *AuthenticationService) CurrentSession(token string) (string, error) {
	return utils.ParseSessionToken(as.mode, token, as.secret)
}
