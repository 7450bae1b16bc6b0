package server

// Server groups the HTTP handlers of every resource the API exposes.
type Server struct {
	EvaluationServer
	RateServer
}

func NewServer(
	evaluationServer EvaluationServer,
	rateServer RateServer,
) Server {
	return Server{
		EvaluationServer: evaluationServer,
		RateServer:       rateServer,
	}
}
