package routes

import (
	"github.com/gin-gonic/gin"

	"library_lending/app"
	"library_lending/controllers"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	authCtl := controllers.NewAuthController(s)
	readerCtl := controllers.NewReaderController(s)
	bookCtl := controllers.NewBookController(s)
	domainCtl := controllers.NewDomainController(s)
	loanCtl := controllers.NewLoanController(s)

	authMW := app.AuthRequired(s.Sess, s.Repo)
	staffMW := app.StaffOnly()

	// ------------------------------
	// Auth
	// ------------------------------
	auth := r.Group("/auth")
	{
		auth.POST("/login", authCtl.Login)
		auth.POST("/logout", authCtl.Logout)
		auth.GET("/whoami", authMW, authCtl.Whoami)
	}

	// ------------------------------
	// Readers (staff manages accounts)
	// ------------------------------
	readers := r.Group("/api/readers", authMW, staffMW)
	{
		readers.POST("", readerCtl.Register)
		readers.GET("", readerCtl.List)
		readers.GET("/:id", readerCtl.Get)
		readers.GET("/:id/loans", loanCtl.ListOfReader)
	}

	// ------------------------------
	// Catalogue (browse for everyone, edits for staff)
	// ------------------------------
	books := r.Group("/api/books", authMW)
	{
		books.GET("", bookCtl.List)
		books.GET("/:id", bookCtl.Get)
	}
	booksAdmin := r.Group("/api/books", authMW, staffMW)
	{
		booksAdmin.POST("", bookCtl.Create)
		booksAdmin.POST("/:id/editions", bookCtl.CreateEdition)
	}

	authors := r.Group("/api/authors", authMW)
	{
		authors.GET("", bookCtl.ListAuthors)
		authors.POST("", staffMW, bookCtl.CreateAuthor)
	}

	domains := r.Group("/api/domains", authMW)
	{
		domains.GET("", domainCtl.List)
		domains.GET("/:id/books", bookCtl.ByDomain)
		domains.POST("", staffMW, domainCtl.Create)
		domains.PUT("/:id/parent", staffMW, domainCtl.Reparent)
	}

	// ------------------------------
	// Loans
	// ------------------------------
	loans := r.Group("/api/loans", authMW)
	{
		loans.GET("", loanCtl.ListMine) // ?status=open
		loans.POST("/request", loanCtl.BorrowMany)
		loans.POST("/:loanId/extend", loanCtl.Extend)
		loans.POST("/:loanId/return", loanCtl.Return)
	}
	r.POST("/api/editions/:id/borrow", authMW, loanCtl.Borrow)

	loansAdmin := r.Group("/api/staff/loans", authMW, staffMW)
	{
		loansAdmin.POST("", loanCtl.StaffBorrow)
		loansAdmin.POST("/:loanId/return", loanCtl.StaffReturn)
	}
}
