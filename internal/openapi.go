//go:generate go run github.com/swaggo/swag/v2/cmd/swag init --parseInternal --outputTypes json -g openapi.go -o .
package internal

// @title         mangamirror api
// @version       1.0
// @description   A read-through mirror of the Senkuro manga catalog with release notifications.
//
// @contact.url   https://github.com/bubblemanga/mangamirror
//
// @servers       localhost:8788
