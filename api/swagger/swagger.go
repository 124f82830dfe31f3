package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Edumentor API",
        "description": "Teacher/school job marketplace backend",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Registration, login and notifications"},
        {"name": "Teachers", "description": "Teacher profile management"},
        {"name": "Schools", "description": "School profile management"},
        {"name": "Jobs", "description": "Job postings and applications"},
        {"name": "Payments", "description": "Mobile-money payments and activation"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a user account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Validation or duplicate email", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate a user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/auth/notifications/{user_id}": {
            "get": {
                "tags": ["Auth"],
                "summary": "List a user's notifications",
                "parameters": [
                    {"name": "user_id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/teachers/": {
            "get": {
                "tags": ["Teachers"],
                "summary": "List teacher profiles",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Teachers"],
                "summary": "Create teacher profile",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTeacherRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/teachers/{id}": {
            "get": {
                "tags": ["Teachers"],
                "summary": "Get teacher profile",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "put": {
                "tags": ["Teachers"],
                "summary": "Update teacher profile",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateTeacherRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/teachers/by_user/{user_id}": {
            "get": {
                "tags": ["Teachers"],
                "summary": "Get teacher profile linked to a user",
                "parameters": [
                    {"name": "user_id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/schools/": {
            "get": {
                "tags": ["Schools"],
                "summary": "List schools",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Schools"],
                "summary": "Register a school",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSchoolRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Validation or duplicate email", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/schools/{id}": {
            "get": {
                "tags": ["Schools"],
                "summary": "Get school",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "put": {
                "tags": ["Schools"],
                "summary": "Update school",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateSchoolRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/jobs/": {
            "get": {
                "tags": ["Jobs"],
                "summary": "List active job postings",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Jobs"],
                "summary": "Publish a job posting",
                "parameters": [
                    {"name": "school_id", "in": "query", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateJobRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "404": {"description": "School not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/jobs/{job_id}": {
            "get": {
                "tags": ["Jobs"],
                "summary": "Get a job posting",
                "parameters": [
                    {"name": "job_id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "put": {
                "tags": ["Jobs"],
                "summary": "Update a job posting",
                "parameters": [
                    {"name": "job_id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateJobRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Jobs"],
                "summary": "Delete a job posting",
                "parameters": [
                    {"name": "job_id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/jobs/apply/": {
            "post": {
                "tags": ["Jobs"],
                "summary": "Apply to a job posting",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ApplyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Duplicate application", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "404": {"description": "Job not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/jobs/{job_id}/applications": {
            "get": {
                "tags": ["Jobs"],
                "summary": "List applications for a job posting",
                "parameters": [
                    {"name": "job_id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/jobs/school/{school_id}": {
            "get": {
                "tags": ["Jobs"],
                "summary": "List a school's job postings",
                "parameters": [
                    {"name": "school_id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/jobs/school/{school_id}/applications": {
            "get": {
                "tags": ["Jobs"],
                "summary": "List applications across a school's postings",
                "parameters": [
                    {"name": "school_id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/jobs/school/{school_id}/applications/export": {
            "get": {
                "tags": ["Jobs"],
                "summary": "Export a school's applications as CSV or PDF",
                "parameters": [
                    {"name": "school_id", "in": "path", "required": true, "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/payments/initiate": {
            "post": {
                "tags": ["Payments"],
                "summary": "Initiate a mobile-money payment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/InitiatePaymentRequest"}}
                ],
                "responses": {
                    "200": {"description": "Payment initiated"},
                    "404": {"description": "Teacher not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "502": {"description": "Provider failure", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/payments/webhook/eversend": {
            "post": {
                "tags": ["Payments"],
                "summary": "Eversend settlement webhook",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/WebhookRequest"}}
                ],
                "responses": {
                    "200": {"description": "Always acknowledged"}
                }
            }
        },
        "/payments/{transaction_id}": {
            "get": {
                "tags": ["Payments"],
                "summary": "Get payment status by transaction id",
                "parameters": [
                    {"name": "transaction_id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "role": {"type": "string", "enum": ["teacher", "school"]}
            },
            "required": ["name", "email", "password", "role"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "LoginResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user": {"type": "object"},
                "active": {"type": "boolean"},
                "token": {"type": "string"}
            }
        },
        "CreateTeacherRequest": {
            "type": "object",
            "properties": {
                "subject": {"type": "string"},
                "bio": {"type": "string"},
                "location": {"type": "string"},
                "phone": {"type": "string"},
                "experience_years": {"type": "integer"},
                "user_id": {"type": "integer"}
            },
            "required": ["subject"]
        },
        "UpdateTeacherRequest": {
            "type": "object",
            "properties": {
                "subject": {"type": "string"},
                "bio": {"type": "string"},
                "location": {"type": "string"},
                "phone": {"type": "string"},
                "experience_years": {"type": "integer"}
            }
        },
        "CreateSchoolRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "location": {"type": "string"},
                "description": {"type": "string"},
                "user_id": {"type": "integer"}
            },
            "required": ["name", "email"]
        },
        "UpdateSchoolRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "location": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "CreateJobRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "subject": {"type": "string"},
                "experience": {"type": "string"},
                "description": {"type": "string"},
                "salary": {"type": "string"}
            },
            "required": ["title", "subject"]
        },
        "UpdateJobRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "subject": {"type": "string"},
                "experience": {"type": "string"},
                "description": {"type": "string"},
                "salary": {"type": "string"},
                "status": {"type": "string", "enum": ["Active", "Closed", "Draft"]}
            }
        },
        "ApplyRequest": {
            "type": "object",
            "properties": {
                "job_id": {"type": "integer"},
                "teacher_id": {"type": "integer"},
                "message": {"type": "string"}
            },
            "required": ["job_id", "teacher_id"]
        },
        "InitiatePaymentRequest": {
            "type": "object",
            "properties": {
                "teacher_id": {"type": "integer"},
                "amount": {"type": "number"},
                "method": {"type": "string"},
                "phone_number": {"type": "string"}
            },
            "required": ["teacher_id", "amount", "method", "phone_number"]
        },
        "WebhookRequest": {
            "type": "object",
            "properties": {
                "transaction_id": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ErrorEnvelope": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/APIError"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
