package presence

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/farfania/oblivion-launcher/internal/model"
)

// DefaultActivityName is shown when the distribution names no activity
const DefaultActivityName = "Oblivion"

// statusSession is the part of a gateway session presence needs
type statusSession interface {
	UpdateStatusComplex(usd discordgo.UpdateStatusData) error
	Close() error
}

// Activity is the initial presence published on connect
type Activity struct {
	Name    string
	Details string
	State   string
	Meta    *model.DiscordMeta
}

// Discord publishes presence through a discordgo gateway session
type Discord struct {
	session statusSession
	logger  *zap.Logger

	mu       sync.Mutex
	activity discordgo.Activity
	closed   bool
}

// Connect opens a bot gateway session and publishes the initial activity
func Connect(token string, activity Activity, logger *zap.Logger) (*Discord, error) {
	if token == "" {
		return nil, errors.New("presence: discord token is empty")
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("presence: create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds
	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("presence: open session: %w", err)
	}
	return newDiscord(session, activity, logger), nil
}

func newDiscord(session statusSession, a Activity, logger *zap.Logger) *Discord {
	if logger == nil {
		logger = zap.NewNop()
	}
	name := a.Name
	if name == "" {
		name = DefaultActivityName
	}
	d := &Discord{
		session: session,
		logger:  logger,
		activity: discordgo.Activity{
			Name:    name,
			Type:    discordgo.ActivityTypeGame,
			Details: a.Details,
			State:   a.State,
			Timestamps: discordgo.TimeStamps{
				StartTimestamp: time.Now().Unix(),
			},
		},
	}
	if a.Meta != nil {
		d.activity.ApplicationID = a.Meta.ClientID
		d.activity.Assets = discordgo.Assets{
			SmallImageID: a.Meta.SmallImageKey,
			SmallText:    a.Meta.SmallImageText,
		}
	}
	d.push()
	return d
}

// UpdateDetails replaces the activity details line
func (d *Discord) UpdateDetails(details string) {
	d.mu.Lock()
	d.activity.Details = details
	d.mu.Unlock()
	d.push()
}

// UpdateState replaces the activity state line
func (d *Discord) UpdateState(state string) {
	d.mu.Lock()
	d.activity.State = state
	d.mu.Unlock()
	d.push()
}

// ClearState removes the activity state line
func (d *Discord) ClearState() {
	d.UpdateState("")
}

// ResetTime restarts the elapsed time counter
func (d *Discord) ResetTime() {
	d.mu.Lock()
	d.activity.Timestamps.StartTimestamp = time.Now().Unix()
	d.mu.Unlock()
	d.push()
}

// Close clears the activity and closes the session
func (d *Discord) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.mu.Unlock()

	if err := d.session.UpdateStatusComplex(discordgo.UpdateStatusData{Status: "online"}); err != nil {
		d.logger.Debug("failed to clear presence", zap.Error(err))
	}
	return d.session.Close()
}

// Current returns a copy of the published activity
func (d *Discord) Current() discordgo.Activity {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.activity
}

func (d *Discord) push() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	activity := d.activity
	d.mu.Unlock()

	err := d.session.UpdateStatusComplex(discordgo.UpdateStatusData{
		Activities: []*discordgo.Activity{&activity},
		Status:     "online",
	})
	if err != nil {
		d.logger.Warn("failed to update presence", zap.Error(err))
	}
}
