package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the content API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>teamsite API: Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// POST endpoints need the session_cookie set by POST /login.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "teamsite", "version": "v1.0.0" },
  "components": {
    "securitySchemes": { "session": { "type": "apiKey", "in": "cookie", "name": "session_cookie" } },
    "schemas": {
      "Result": { "type": "object", "properties": { "status": {"type":"string","enum":["success","error"]}, "message": {"type":"string"}, "id": {"type":"string"} } }
    }
  },
  "paths": {
    "/login": {
      "post": {
        "summary": "Log in with email and password",
        "requestBody": { "content": { "application/x-www-form-urlencoded": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"},"next_url":{"type":"string"}}}}}},
        "responses": { "303": { "description": "redirect to next_url, /add-project, or /login?error=1" } }
      }
    },
    "/logout": {
      "get": { "summary": "End the session", "responses": { "303": { "description": "redirect to /" } } }
    },
    "/api/projects": {
      "get": { "summary": "List projects", "responses": { "200": { "description": "array of projects" } } },
      "post": {
        "summary": "Add a project", "security": [{"session": []}],
        "requestBody": { "content": { "multipart/form-data": { "schema": {"type":"object","required":["projectTitle","projectDescription","techStack","linkedinLink","githubLink"],"properties":{"projectTitle":{"type":"string"},"projectDescription":{"type":"string"},"techStack":{"type":"string"},"linkedinLink":{"type":"string"},"githubLink":{"type":"string"},"projectImage":{"type":"string","format":"binary"}}}}}},
        "responses": { "200": { "description": "created" }, "307": { "description": "login required" } }
      }
    },
    "/api/members": {
      "get": { "summary": "List members", "responses": { "200": { "description": "array of members" } } },
      "post": {
        "summary": "Add a member, optionally with an admin login", "security": [{"session": []}],
        "requestBody": { "content": { "multipart/form-data": { "schema": {"type":"object","required":["fullName","role","email"],"properties":{"fullName":{"type":"string"},"role":{"type":"string"},"email":{"type":"string"},"password":{"type":"string"},"linkedin":{"type":"string"},"github":{"type":"string"},"adminPrivileges":{"type":"boolean"},"profileImage":{"type":"string","format":"binary"},"resume":{"type":"string","format":"binary"}}}}}},
        "responses": { "200": { "description": "created" }, "400": { "description": "admin fields missing" }, "409": { "description": "email already registered" }, "307": { "description": "login required" } }
      }
    },
    "/api/gallery": {
      "get": { "summary": "List gallery items", "responses": { "200": { "description": "array of gallery items" } } },
      "post": {
        "summary": "Add a gallery item", "security": [{"session": []}],
        "requestBody": { "content": { "multipart/form-data": { "schema": {"type":"object","required":["caption","category","description"],"properties":{"caption":{"type":"string"},"category":{"type":"string"},"description":{"type":"string"},"image":{"type":"string","format":"binary"}}}}}},
        "responses": { "200": { "description": "created" }, "307": { "description": "login required" } }
      }
    },
    "/api/blogs": {
      "get": { "summary": "List blog posts", "responses": { "200": { "description": "array of blog posts" } } },
      "post": {
        "summary": "Add a blog post", "security": [{"session": []}],
        "requestBody": { "content": { "multipart/form-data": { "schema": {"type":"object","required":["title","content","date","category","author","readTime","tags"],"properties":{"title":{"type":"string"},"content":{"type":"string"},"date":{"type":"string"},"category":{"type":"string"},"author":{"type":"string"},"readTime":{"type":"string"},"tags":{"type":"string"},"image":{"type":"string","format":"binary"}}}}}},
        "responses": { "200": { "description": "created" }, "307": { "description": "login required" } }
      }
    },
    "/health": { "get": { "summary": "Liveness", "responses": { "200": { "description": "ok" } } } },
    "/ready": { "get": { "summary": "Readiness (database ping)", "responses": { "200": { "description": "ready" }, "503": { "description": "database unreachable" } } } }
  }
}`
