package usecase

// UseCases bundles the application use cases handed to controllers
type UseCases struct {
	Diagnosis *DiagnosisUseCase
	Chat      *ChatUseCase
}

type Option func(*UseCases)

func WithDiagnosis(uc *DiagnosisUseCase) Option {
	return func(u *UseCases) {
		u.Diagnosis = uc
	}
}

func WithChat(uc *ChatUseCase) Option {
	return func(u *UseCases) {
		u.Chat = uc
	}
}

func New(opts ...Option) *UseCases {
	uc := &UseCases{}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}
