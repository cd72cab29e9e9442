package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Summer School API",
        "description": "Back-office API for the summer school enrollment platform",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Session token issuance"},
        {"name": "Users", "description": "Registration and role checks"},
        {"name": "Classes", "description": "Catalog and admin review"},
        {"name": "Enrollments", "description": "Student class selections"},
        {"name": "Payments", "description": "Card payments and ledger"}
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
        "/jwt": {
            "post": {
                "tags": ["Auth"],
                "summary": "Issue a session token for the supplied identity",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "Token", "schema": {"$ref": "#/definitions/TokenResponse"}}
                }
            }
        },
        "/newUser": {
            "post": {
                "tags": ["Users"],
                "summary": "Insert a user document, ignoring repeats of the same email",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "200": {"description": "Existing user", "schema": {"$ref": "#/definitions/User"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/User"}}
                }
            }
        },
        "/allClasses": {
            "get": {
                "tags": ["Classes"],
                "summary": "List approved classes",
                "responses": {
                    "200": {"description": "Classes", "schema": {"type": "array", "items": {"$ref": "#/definitions/Class"}}}
                }
            }
        },
        "/popularClasses": {
            "get": {
                "tags": ["Classes"],
                "summary": "List classes ranked by enrolled count",
                "responses": {
                    "200": {"description": "Classes", "schema": {"type": "array", "items": {"$ref": "#/definitions/Class"}}}
                }
            }
        },
        "/instructors": {
            "get": {
                "tags": ["Users"],
                "summary": "List all instructors",
                "responses": {
                    "200": {"description": "Instructors", "schema": {"type": "array", "items": {"$ref": "#/definitions/User"}}}
                }
            }
        },
        "/popularInstructors": {
            "get": {
                "tags": ["Users"],
                "summary": "List instructors ranked by enrolled student count",
                "responses": {
                    "200": {"description": "Instructors", "schema": {"type": "array", "items": {"$ref": "#/definitions/User"}}}
                }
            }
        },
        "/allUsers/admin/{email}": {
            "get": {
                "tags": ["Users"],
                "summary": "Report whether the email belongs to an admin",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Role flag"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/allUsers/instructor/{email}": {
            "get": {
                "tags": ["Users"],
                "summary": "Report whether the email belongs to an instructor",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Role flag"}
                }
            }
        },
        "/allUsers/student/{email}": {
            "get": {
                "tags": ["Users"],
                "summary": "Report whether the email belongs to a student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Role flag"}
                }
            }
        },
        "/pendingClasses/{email}": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List the student's pending selections",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Enrollments", "schema": {"type": "array", "items": {"$ref": "#/definitions/Enrollment"}}}
                }
            }
        },
        "/selectedClass/{id}": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "Fetch one pending selection by id",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Enrollment", "schema": {"$ref": "#/definitions/Enrollment"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/getPaidClasses/{email}": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List the student's paid enrollments",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Enrollments", "schema": {"type": "array", "items": {"$ref": "#/definitions/Enrollment"}}}
                }
            }
        },
        "/sortedPaidClasses/{email}": {
            "get": {
                "tags": ["Payments"],
                "summary": "List the caller's payment ledger, newest first",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Payments", "schema": {"type": "array", "items": {"$ref": "#/definitions/Payment"}}}
                }
            }
        },
        "/sortedPaidClasses/{email}/export": {
            "get": {
                "tags": ["Payments"],
                "summary": "Export the caller's payment ledger as CSV or PDF",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Statement file"}
                }
            }
        },
        "/getInstructorClasses/{email}": {
            "get": {
                "tags": ["Classes"],
                "summary": "List classes taught by the given instructor",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Classes", "schema": {"type": "array", "items": {"$ref": "#/definitions/Class"}}}
                }
            }
        },
        "/getAllClassForAdmin/{email}": {
            "get": {
                "tags": ["Classes"],
                "summary": "List every class regardless of status",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Classes", "schema": {"type": "array", "items": {"$ref": "#/definitions/Class"}}}
                }
            }
        },
        "/studentsClass/{id}": {
            "post": {
                "tags": ["Enrollments"],
                "summary": "Add a class to the caller's pending selections",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Already added"},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Enrollment"}}
                }
            }
        },
        "/studentsClass/{id}/{email}": {
            "delete": {
                "tags": ["Enrollments"],
                "summary": "Remove a pending selection",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Removed"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/create-payment-intent": {
            "post": {
                "tags": ["Payments"],
                "summary": "Authorize a card payment with the gateway",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PaymentIntentRequest"}}
                ],
                "responses": {
                    "200": {"description": "Client secret"}
                }
            }
        },
        "/payments": {
            "post": {
                "tags": ["Payments"],
                "summary": "Record a confirmed payment and settle the enrollment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SettleRequest"}}
                ],
                "responses": {
                    "200": {"description": "Settlement result"},
                    "404": {"description": "Class or selection not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/addAClass/{email}": {
            "post": {
                "tags": ["Classes"],
                "summary": "Submit a class for review",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddClassRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Class"}}
                }
            }
        },
        "/updateStatus/{id}/{email}/{status}": {
            "patch": {
                "tags": ["Classes"],
                "summary": "Approve or deny a submitted class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "email", "in": "path", "required": true, "type": "string"},
                    {"name": "status", "in": "path", "required": true, "type": "string", "enum": ["approved", "denied"]}
                ],
                "responses": {
                    "200": {"description": "Updated"},
                    "404": {"description": "Class not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/handleFeedback/{email}/{id}": {
            "patch": {
                "tags": ["Classes"],
                "summary": "Attach admin feedback to a class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FeedbackRequest"}}
                ],
                "responses": {
                    "200": {"description": "Recorded"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "definitions": {
        "TokenRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"}
            }
        },
        "TokenResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"}
            }
        },
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "photo": {"type": "string"},
                "role": {"type": "string", "enum": ["student", "instructor", "admin"]}
            }
        },
        "User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "photo": {"type": "string"},
                "role": {"type": "string"},
                "class_names": {"type": "array", "items": {"type": "string"}},
                "number_of_classes": {"type": "integer"},
                "number_of_students": {"type": "integer"}
            }
        },
        "Class": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "image": {"type": "string"},
                "instructor_name": {"type": "string"},
                "instructor_email": {"type": "string"},
                "available_seats": {"type": "integer"},
                "total_seats": {"type": "integer"},
                "price": {"type": "number"},
                "enrolled": {"type": "integer"},
                "status": {"type": "string"},
                "feedback": {"type": "string"}
            }
        },
        "Enrollment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "student_email": {"type": "string"},
                "class_id": {"type": "string"},
                "class_name": {"type": "string"},
                "image": {"type": "string"},
                "price": {"type": "number"},
                "payment_status": {"type": "string"}
            }
        },
        "Payment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "class_name": {"type": "string"},
                "amount": {"type": "number"},
                "transaction_id": {"type": "string"},
                "status": {"type": "string"},
                "paid_at": {"type": "string"}
            }
        },
        "PaymentIntentRequest": {
            "type": "object",
            "properties": {
                "price": {"type": "number"}
            }
        },
        "SettleRequest": {
            "type": "object",
            "properties": {
                "class_id": {"type": "string"},
                "class_name": {"type": "string"},
                "instructor_email": {"type": "string"},
                "email": {"type": "string"},
                "amount": {"type": "number"},
                "transaction_id": {"type": "string"},
                "status": {"type": "string"},
                "date": {"type": "string"}
            }
        },
        "AddClassRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "image": {"type": "string"},
                "instructor_name": {"type": "string"},
                "available_seats": {"type": "integer"},
                "price": {"type": "number"}
            }
        },
        "FeedbackRequest": {
            "type": "object",
            "properties": {
                "feedback": {"type": "string"}
            }
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "boolean"},
                "message": {"type": "string"}
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
