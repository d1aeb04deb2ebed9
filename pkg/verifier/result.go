package verifier

// User-facing messages. They are part of the public wire contract.
const (
	MessageFound                = "Assinatura ativa encontrada."
	MessageNoCustomer           = "Nenhum cliente encontrado com este email."
	MessageNoActiveSubscription = "Cliente encontrado, mas sem assinatura ativa."
	MessageUnavailable          = "Erro ao verificar assinatura. Tente novamente mais tarde."
	MessageBadRequest           = "Email é obrigatório."
	MessageMethodNotAllowed     = "Método não permitido."
	MessageTooManyRequests      = "Muitas tentativas. Aguarde um momento e tente novamente."
)

// Outcome classifies a verification for metrics and logs.
type Outcome string

const (
	OutcomeFound                Outcome = "found"
	OutcomeNoCustomer           Outcome = "no_customer"
	OutcomeNoActiveSubscription Outcome = "no_active_subscription"
	OutcomeUnavailable          Outcome = "unavailable"
	OutcomeBadRequest           Outcome = "bad_request"
)

// Query is the request body of the verification endpoint.
type Query struct {
	Email string `json:"email"`
}

// Result of a verification. Found implies both identifiers are set.
type Result struct {
	Found          bool
	CustomerID     string
	SubscriptionID string
	Message        string
	Outcome        Outcome
}

// found returns false when either identifier is missing.
func found(customerID, subscriptionID string) (Result, bool) {
	if customerID == "" || subscriptionID == "" {
		return Result{}, false
	}
	return Result{
		Found:          true,
		CustomerID:     customerID,
		SubscriptionID: subscriptionID,
		Message:        MessageFound,
		Outcome:        OutcomeFound,
	}, true
}

func notFound(o Outcome) Result {
	msg := MessageNoCustomer
	if o == OutcomeNoActiveSubscription {
		msg = MessageNoActiveSubscription
	}
	return Result{Message: msg, Outcome: o}
}

func unavailable() Result {
	return Result{Message: MessageUnavailable, Outcome: OutcomeUnavailable}
}
