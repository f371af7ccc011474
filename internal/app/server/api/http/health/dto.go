package health

type Input struct{}

type Output struct {
	Body Response
}

type Response struct {
	Status  string `json:"status" example:"ok" doc:"Health status of the service"`
	Message string `json:"message" example:"API is running"`
}
