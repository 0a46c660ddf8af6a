package web

const (
	// PUBLIC PAGES
	// GET / landing page
	landingEndpoint = "/"
	// GET /login and POST /login to sign in an admin
	loginEndpoint = "/login"
	// GET /signup and POST /signup to register an admin
	signupEndpoint = "/signup"
	// GET /register alias of the signup page
	registerEndpoint = "/register"
	// GET /terms terms and conditions
	termsEndpoint = "/terms"
	// GET /ping liveness probe
	pingEndpoint = "/ping"
	// GET /static/* stylesheets and images
	staticEndpoint = "/static/*"

	// SESSION ROUTES
	// POST /logout to end the admin session
	logoutEndpoint = "/logout"

	// DASHBOARD ROUTES
	// GET /dashboard?tab={tab}&{filters}&page={page} to list a tab
	dashboardEndpoint = "/dashboard"
	// GET /dashboard/{tab}/{id}/{modal} to open a detail view
	modalEndpoint = "/dashboard/{tab}/{id}/{modal}"
	// POST /dashboard/creators/{id}/verify to verify a creator account
	verifyCreatorEndpoint = "/dashboard/creators/{id}/verify"
	// POST /dashboard/brands/verify to send the verification email of a brand
	verifyBrandEndpoint = "/dashboard/brands/verify"
	// POST /dashboard/accounts/{userType}/{id}/delete to delete an account
	deleteAccountEndpoint = "/dashboard/accounts/{userType}/{id}/delete"
	// POST /dashboard/creators/{id}/videos/{videoID}/status to moderate a video
	videoStatusEndpoint = "/dashboard/creators/{id}/videos/{videoID}/status"
	// POST /dashboard/collaborations/{id}/payment to mark a payment as done
	paymentEndpoint = "/dashboard/collaborations/{id}/payment"
)
