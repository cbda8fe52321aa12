package quota

import (
	"context"
	"fmt"

	"golang.org/x/text/language"
)

// messageSet holds the user-facing templates for one locale. Every denial
// message must name the concrete current/max counts and a next action;
// vague denials are not part of the contract.
type messageSet struct {
	usage          string // current, max, resource
	limitReached   string // resource, current, max
	noTenant       string
	noSubscription string
	resources      map[Resource]string
}

var supportedLocales = []language.Tag{
	language.English, // fallback
	language.BrazilianPortuguese,
}

var localeMatcher = language.NewMatcher(supportedLocales)

var messages = map[language.Tag]messageSet{
	language.English: {
		usage:          "%d/%d %s used",
		limitReached:   "You have reached the %s limit of your plan (%d/%d). Upgrade your plan to add more.",
		noTenant:       "Tenant not identified. Finish onboarding before creating records.",
		noSubscription: "No active subscription. Choose a plan to continue.",
		resources: map[Resource]string{
			ResourceUsers:      "users",
			ResourceProperties: "properties",
			ResourceClients:    "clients",
		},
	},
	language.BrazilianPortuguese: {
		usage:          "%d/%d %s em uso",
		limitReached:   "Voce atingiu o limite de %s do seu plano (%d/%d). Faca upgrade do plano para adicionar mais.",
		noTenant:       "Organizacao nao identificada. Conclua o cadastro antes de criar registros.",
		noSubscription: "Nenhuma assinatura ativa. Escolha um plano para continuar.",
		resources: map[Resource]string{
			ResourceUsers:      "usuarios",
			ResourceProperties: "imoveis",
			ResourceClients:    "clientes",
		},
	},
}

// localeCtxKey is a private type to prevent collisions with other context keys.
type localeCtxKey struct{}

// WithLocale stores the caller's preferred locale in the context.
// Unknown locales fall back to English at message-building time.
func WithLocale(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, localeCtxKey{}, tag)
}

// LocaleFromContext returns the locale stored in the context, if any.
func LocaleFromContext(ctx context.Context) (language.Tag, bool) {
	tag, ok := ctx.Value(localeCtxKey{}).(language.Tag)
	return tag, ok
}

func messagesFor(ctx context.Context) messageSet {
	tag, ok := LocaleFromContext(ctx)
	if !ok {
		return messages[language.English]
	}
	// Match may decorate the returned tag with extensions, so index into
	// the supported set instead of using the tag as a map key.
	_, idx, _ := localeMatcher.Match(tag)
	if set, ok := messages[supportedLocales[idx]]; ok {
		return set
	}
	return messages[language.English]
}

func (m messageSet) resourceName(res Resource) string {
	if name, ok := m.resources[res]; ok {
		return name
	}
	return string(res)
}

func (m messageSet) usageMessage(res Resource, current, limit int64) string {
	return fmt.Sprintf(m.usage, current, limit, m.resourceName(res))
}

func (m messageSet) limitReachedMessage(res Resource, current, limit int64) string {
	return fmt.Sprintf(m.limitReached, m.resourceName(res), current, limit)
}
