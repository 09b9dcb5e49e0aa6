package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/bookstore/internal/handler"
)

func registerBookRoutes(g *echo.Group, h *handler.Handlers) {
	books := h.Book

	g.POST("", handler.Handle(books.Handler, books.CreateBook, http.StatusCreated))
	g.GET("", handler.Handle(books.Handler, books.GetBooks, http.StatusOK))
	g.GET("/:id", handler.Handle(books.Handler, books.GetBookByID, http.StatusOK))
	g.PUT("/:id", handler.Handle(books.Handler, books.UpdateBook, http.StatusOK))
	g.DELETE("/:id", handler.Handle(books.Handler, books.DeleteBook, http.StatusOK))
}
