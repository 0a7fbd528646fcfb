package server

//go:generate swag init -g internal/server/swagger.go -o internal/server/docs

// @title jobcheck API
// @version 0.1
// @description Scores job postings for fraud likelihood and keeps a history of analyses.
// @contact.name jobcheck maintainers
// @contact.url https://github.com/raysh454/jobcheck
// @BasePath /
