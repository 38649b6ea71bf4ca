package eventsub

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/marcelsud/twitch-relay/eventsub/payload"
	"github.com/marcelsud/twitch-relay/eventsub/signature"
)

/* Service represents the business logic layer
 * Uses pointer semantics as it's an API, not data
 * Collaborators are built once at process start and injected
 */

// UseCase defines the operations behind the single HTTP endpoint
type UseCase interface {
	Manage(ctx context.Context, action, eventType, callbackURL string) (Subscription, error)
	List(ctx context.Context) ([]Subscription, error)
	Dispatch(ctx context.Context, n Notification) (Result, error)
}

type Service struct {
	API         SubscriptionAPI
	Broadcaster Publisher
	Catalog     Catalog
	Observer    Observer

	// Secret is the shared webhook secret used to sign deliveries
	Secret string
	// Channel is both the broadcast channel and the target broadcaster user id
	Channel string
}

// NewService creates a new EventSub service with dependency injection
func NewService(api SubscriptionAPI, broadcaster Publisher, catalog Catalog, secret, channel string) *Service {
	return &Service{
		API:         api,
		Broadcaster: broadcaster,
		Catalog:     catalog,
		Observer:    NopObserver{},
		Secret:      secret,
		Channel:     channel,
	}
}

func (s *Service) observer() Observer {
	if s.Observer == nil {
		return NopObserver{}
	}
	return s.Observer
}

// List returns the enabled upstream subscriptions
func (s *Service) List(ctx context.Context) ([]Subscription, error) {
	subs, err := s.API.ListEnabled(ctx)
	if err != nil {
		return nil, upstreamError(err, "Failed to fetch subscriptions.")
	}
	s.observer().Subscriptions(ctx, subs)
	return subs, nil
}

// Manage subscribes to or unsubscribes from eventType.
// Subscribing when already subscribed, or unsubscribing when absent, is a client error.
func (s *Service) Manage(ctx context.Context, action, eventType, callbackURL string) (Subscription, error) {
	a := NewAction(action)
	if err := a.Validate(); err != nil {
		return Subscription{}, clientError("Invalid action. Valid actions: " + validActions())
	}

	def, ok := s.Catalog.Lookup(eventType)
	if !ok {
		return Subscription{}, clientError("Invalid type. Valid types: " + strings.Join(s.Catalog.Types(), ", "))
	}

	subs, err := s.List(ctx)
	if err != nil {
		return Subscription{}, err
	}

	existing, found := findByType(subs, eventType)

	switch {
	case a == Subscribe && !found:
		created, err := s.API.Create(ctx, CreateRequest{
			Type:      def.Type,
			Version:   def.Version,
			Condition: def.Condition(s.Channel),
			Transport: Transport{
				Method:   TransportWebhook,
				Callback: callbackURL,
				Secret:   s.Secret,
			},
		})
		if err != nil {
			return Subscription{}, upstreamError(err, "Failed to create subscription.")
		}
		s.observer().Subscribed(ctx, created)
		return created, nil

	case a == Unsubscribe && found:
		if err := s.API.Delete(ctx, existing.ID); err != nil {
			return Subscription{}, upstreamError(err, "Failed to delete subscription.")
		}
		s.observer().Unsubscribed(ctx, existing)
		return existing, nil

	default:
		return Subscription{}, clientError(MessageRequestFailed)
	}
}

// Dispatch verifies a delivery, answers the handshake and forwards known events.
// Unknown subscription types are accepted without being forwarded.
func (s *Service) Dispatch(ctx context.Context, n Notification) (Result, error) {
	obs := s.observer()
	obs.RawEvent(ctx, n)

	msg := signature.Message(n.MessageID, n.Timestamp, n.Body)
	if !signature.Verify(n.Signature, s.Secret, msg) {
		err := authError()
		obs.Rejected(ctx, n, err)
		return Result{}, err
	}

	env, err := payload.Parse(n.Body)
	if err != nil {
		err = malformedPayload(err)
		obs.Rejected(ctx, n, err)
		return Result{}, err
	}

	switch n.MessageType {
	case Verification:
		challenge, err := env.Challenge()
		if err != nil {
			err = malformedPayload(err)
			obs.Rejected(ctx, n, err)
			return Result{}, err
		}
		obs.Challenge(ctx, n, challenge)
		return Result{
			StatusCode:  http.StatusOK,
			ContentType: "text/plain; charset=utf-8",
			Body:        []byte(challenge),
		}, nil
	case Revocation:
		obs.Revoked(ctx, n)
		return Result{StatusCode: http.StatusOK}, nil
	}

	if _, ok := s.Catalog.Lookup(n.SubscriptionType); !ok {
		return Result{StatusCode: http.StatusOK}, nil
	}

	data := payload.Transform(n.SubscriptionType, n.Body)
	if err := s.Broadcaster.Publish(ctx, s.Channel, n.SubscriptionType, data); err != nil {
		err = upstreamError(err, fmt.Sprintf("Failed to broadcast %s.", n.SubscriptionType))
		obs.Rejected(ctx, n, err)
		return Result{}, err
	}
	obs.Forwarded(ctx, n, s.Channel)

	return Result{StatusCode: http.StatusOK}, nil
}

func findByType(subs []Subscription, eventType string) (Subscription, bool) {
	for _, sub := range subs {
		if sub.Type == eventType {
			return sub, true
		}
	}
	return Subscription{}, false
}

func validActions() string {
	names := make([]string, len(Actions))
	for i, a := range Actions {
		names[i] = a.String()
	}
	return strings.Join(names, ", ")
}
