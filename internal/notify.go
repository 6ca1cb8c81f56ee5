package internal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// _testNotifyTimeout bounds how long a test notification may take.
var _testNotifyTimeout = 10 * time.Second

// messenger delivers a message to a chat.
type messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// Fanout notifies a manga's subscribers about new chapters. Deliveries are
// handed to the outbox, so Notify only blocks on the subscriber lookup.
type Fanout struct {
	subscribers interface {
		Subscribers(ctx context.Context, mangaID string) ([]subscriber, error)
	}
	outbox  *Outbox
	sender  messenger
	siteURL string

	// respectPrefs skips users who turned notifications off.
	respectPrefs bool

	policy *bluemonday.Policy
}

// NewFanout creates a new Fanout. Chapter links are rooted at siteURL.
func NewFanout(store mirror, outbox *Outbox, sender messenger, siteURL string, respectPrefs bool) *Fanout {
	return &Fanout{
		subscribers:  store,
		outbox:       outbox,
		sender:       sender,
		siteURL:      strings.TrimSuffix(siteURL, "/"),
		respectPrefs: respectPrefs,
		policy:       bluemonday.StrictPolicy(),
	}
}

// Notify queues a release message for every subscriber of the manga. The
// number of queued deliveries is returned.
func (f *Fanout) Notify(ctx context.Context, ev ReleaseEvent) (int, error) {
	subs, err := f.subscribers.Subscribers(ctx, ev.Manga.ID)
	if err != nil {
		return 0, fmt.Errorf("resolving subscribers: %w", err)
	}
	if len(subs) == 0 {
		return 0, nil
	}

	batch := uuid.NewString()
	ctx = context.WithValue(ctx, middleware.RequestIDKey, "notify-"+batch)
	text := f.render(ev)

	queued := 0
	for _, sub := range subs {
		if f.respectPrefs && !sub.NotificationsEnabled {
			continue
		}
		if sub.TelegramID == 0 {
			continue
		}
		chatID := sub.TelegramID
		err := f.outbox.Submit(ctx, func(ctx context.Context) error {
			return f.sender.SendMessage(ctx, chatID, text)
		})
		if err != nil {
			Log(ctx).Warn("problem queueing notification", "userID", sub.UserID, "err", err)
			continue
		}
		queued++
	}

	Log(ctx).Info("queued release notifications",
		"manga", ev.Manga.Slug,
		"chapter", ev.Chapter.Number,
		"subscribers", len(subs),
		"queued", queued,
	)
	return queued, nil
}

// Test sends a test message to a chat and waits for it to be delivered.
func (f *Fanout) Test(ctx context.Context, chatID int64) error {
	text := "🤖 <b>BubbleManga: тест уведомлений</b>\n\n" +
		"Если ты видишь это сообщение, бот работает корректно.\n" +
		"🕐 " + time.Now().Format("02.01.2006 15:04:05")
	return f.outbox.Call(ctx, _testNotifyTimeout, func(ctx context.Context) error {
		return f.sender.SendMessage(ctx, chatID, text)
	})
}

// render builds the HTML message for a release.
func (f *Fanout) render(ev ReleaseEvent) string {
	title := f.clean(ev.Manga.Title)
	if title == "" {
		title = f.clean(ev.Manga.Slug)
	}

	var sb strings.Builder
	sb.WriteString("🆕 <b>Новая глава!</b>\n\n")
	fmt.Fprintf(&sb, "📖 <b>%s</b>\n", title)
	fmt.Fprintf(&sb, "Глава: %s", f.clean(ev.Chapter.Number))
	if v := f.clean(ev.Chapter.Volume); v != "" {
		fmt.Fprintf(&sb, " (Том %s)", v)
	}
	if n := f.clean(ev.Chapter.Name); n != "" {
		fmt.Fprintf(&sb, "\n%s", n)
	}

	url := f.siteURL + ChapterURL(ev.Manga.Slug, ev.Chapter.Slug)
	fmt.Fprintf(&sb, "\n\n🔗 <a href='%s'>Читать на сайте</a>", html.EscapeString(url))

	return sb.String()
}

// clean strips markup and escapes what's left so it's safe for Telegram's
// HTML parse mode.
func (f *Fanout) clean(s string) string {
	stripped := html.UnescapeString(f.policy.Sanitize(s))
	return html.EscapeString(strings.TrimSpace(stripped))
}
