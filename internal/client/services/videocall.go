package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/gesturetalk/internal/client/models"
	"github.com/dmitrijs2005/gesturetalk/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

const (
	MeetingIDLength = 10
	meetingAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// RoomTokenTTL bounds how long an embed link stays usable.
	RoomTokenTTL = time.Hour
)

// VideoCall hands out meeting rooms on the external call page.
type VideoCall interface {
	Start() (string, error)
	Join(id string) (string, error)
	EmbedURL(id string, user models.User) (string, error)
}

// RoomClaims is the payload of a signed room token.
type RoomClaims struct {
	Room string `json:"room"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

type videoCall struct {
	baseURL string
	secret  []byte
	now     func() time.Time
}

// NewVideoCall returns rooms hosted at baseURL. With an empty secret embed
// links carry no token.
func NewVideoCall(baseURL, secret string) VideoCall {
	return &videoCall{baseURL: baseURL, secret: []byte(secret), now: time.Now}
}

// Start makes a fresh random meeting id.
func (v *videoCall) Start() (string, error) {
	var b strings.Builder
	limit := big.NewInt(int64(len(meetingAlphabet)))
	for i := 0; i < MeetingIDLength; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("meeting id: %w", err)
		}
		b.WriteByte(meetingAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// Join normalizes a typed meeting id.
func (v *videoCall) Join(id string) (string, error) {
	id = strings.ToUpper(strings.TrimSpace(id))
	if id == "" {
		return "", fmt.Errorf("%w: empty meeting id", common.ErrorValidation)
	}
	return id, nil
}

func (v *videoCall) EmbedURL(id string, user models.User) (string, error) {
	id, err := v.Join(id)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(v.baseURL)
	if err != nil {
		return "", fmt.Errorf("video call base url: %w", err)
	}

	q := u.Query()
	q.Set("meet", id)
	if len(v.secret) > 0 {
		token, err := v.roomToken(id, user)
		if err != nil {
			return "", err
		}
		q.Set("token", token)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (v *videoCall) roomToken(id string, user models.User) (string, error) {
	now := v.now()
	claims := RoomClaims{
		Room: id,
		Name: user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(RoomTokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("room token: %w", err)
	}
	return signed, nil
}
