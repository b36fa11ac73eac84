package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "STA Gradebook API",
        "description": "Grading, ranking, attendance and curriculum progress engine for AF1-AF6 classes",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Classes", "description": "Class roster management"},
        {"name": "Students", "description": "Student roster management"},
        {"name": "Scores", "description": "Score entry, term stats and rankings"},
        {"name": "Attendance", "description": "Daily attendance and rates"},
        {"name": "Curriculum", "description": "Topics and progress tracking"},
        {"name": "Analysis", "description": "Student and class analysis"},
        {"name": "Reports", "description": "Annual report and exports"}
    ],
    "paths": {
        "/classes": {
            "get": {
                "tags": ["Classes"],
                "summary": "List classes",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Classes"],
                "summary": "Create class",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ClassRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/classes/{id}": {
            "get": {
                "tags": ["Classes"],
                "summary": "Get class",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Classes"],
                "summary": "Update class",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ClassRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Classes"],
                "summary": "Delete class",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "204": {"description": "No content"},
                    "409": {"description": "Class still has students"}
                }
            }
        },
        "/classes/{id}/ranking": {
            "get": {
                "tags": ["Scores"],
                "summary": "Term ranking for a class",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "term", "in": "query", "required": true, "type": "integer", "enum": [1, 2, 3]}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/classes/{id}/students/{studentId}/term-stats": {
            "get": {
                "tags": ["Scores"],
                "summary": "Per-subject term stats for a student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "studentId", "in": "path", "required": true, "type": "string"},
                    {"name": "term", "in": "query", "required": true, "type": "integer", "enum": [1, 2, 3]}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/classes/{id}/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "List attendance records for a class",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "from", "in": "query", "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/classes/{id}/attendance/stats": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Attendance rates for a class",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "period", "in": "query", "type": "string", "enum": ["week", "month", "term"]}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/classes/{id}/progress": {
            "get": {
                "tags": ["Curriculum"],
                "summary": "Per-subject curriculum progress for a class",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/classes/{id}/progress/{topicId}": {
            "put": {
                "tags": ["Curriculum"],
                "summary": "Mark a topic completed or not for a class",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "topicId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ClassProgressRequest"}}
                ],
                "responses": {"204": {"description": "No content"}}
            }
        },
        "/classes/{id}/analysis": {
            "get": {
                "tags": ["Analysis"],
                "summary": "Class analysis",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/classes/{id}/reports/annual": {
            "get": {
                "tags": ["Reports"],
                "summary": "Annual report with promotion decisions",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/classes/{id}/reports/annual.csv": {
            "get": {
                "tags": ["Reports"],
                "summary": "Annual report as CSV",
                "produces": ["text/csv"],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/classes/{id}/reports/annual/export": {
            "post": {
                "tags": ["Exports"],
                "summary": "Queue a persisted annual report export",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Class not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/{id}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Status of a queued export",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/export/{token}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a stored export via its signed token",
                "produces": ["text/csv"],
                "parameters": [{"name": "token", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Link invalid or expired", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/scores": {
            "get": {
                "tags": ["Scores"],
                "summary": "List scores",
                "parameters": [
                    {"name": "studentId", "in": "query", "type": "string"},
                    {"name": "classId", "in": "query", "type": "string"},
                    {"name": "kind", "in": "query", "type": "string", "enum": ["EXERCISE", "TEST", "EXAM"]},
                    {"name": "term", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Scores"],
                "summary": "Save a batch of scores",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveScoresRequest"}}
                ],
                "responses": {
                    "204": {"description": "No content"},
                    "400": {"description": "Validation error"}
                }
            },
            "delete": {
                "tags": ["Scores"],
                "summary": "Delete a batch of scores",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DeleteScoresRequest"}}
                ],
                "responses": {"204": {"description": "No content"}}
            }
        },
        "/attendance": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Save attendance for a class day",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveAttendanceRequest"}}
                ],
                "responses": {"204": {"description": "No content"}}
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "parameters": [
                    {"name": "classId", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Students"],
                "summary": "Create student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get student",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Students"],
                "summary": "Update student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete student and all related records",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No content"}}
            }
        },
        "/students/{id}/attendance/stats": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Attendance rates for a student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "period", "in": "query", "type": "string", "enum": ["week", "month", "term"]}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/students/{id}/analysis": {
            "get": {
                "tags": ["Analysis"],
                "summary": "Student analysis with strengths, weaknesses and recommendations",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/students/{id}/progress": {
            "get": {
                "tags": ["Curriculum"],
                "summary": "Individual curriculum progress for a student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "level", "in": "query", "required": true, "type": "string", "enum": ["AF1", "AF2", "AF3", "AF4", "AF5", "AF6"]}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/students/{id}/progress/{topicId}": {
            "delete": {
                "tags": ["Curriculum"],
                "summary": "Clear a student progress mark",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "topicId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"204": {"description": "No content"}}
            }
        },
        "/students/progress": {
            "post": {
                "tags": ["Curriculum"],
                "summary": "Set a student progress mark",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentProgressRequest"}}
                ],
                "responses": {"204": {"description": "No content"}}
            }
        },
        "/curriculum/topics": {
            "get": {
                "tags": ["Curriculum"],
                "summary": "List curriculum topics",
                "parameters": [
                    {"name": "level", "in": "query", "required": true, "type": "string"},
                    {"name": "subject", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Curriculum"],
                "summary": "Create curriculum topic",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TopicRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/curriculum/topics/{id}": {
            "put": {
                "tags": ["Curriculum"],
                "summary": "Update curriculum topic",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TopicRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Curriculum"],
                "summary": "Delete curriculum topic and its progress marks",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No content"}}
            }
        },
        "/curriculum/levels/{level}/template": {
            "post": {
                "tags": ["Curriculum"],
                "summary": "Replace all topics of a level with a template",
                "description": "Without a body the plan is seeded with placeholder topics for every configured subject and week.",
                "parameters": [
                    {"name": "level", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": false, "schema": {"type": "array", "items": {"$ref": "#/definitions/TemplateTopic"}}}
                ],
                "responses": {"204": {"description": "No content"}}
            }
        }
    },
    "definitions": {
        "ClassRequest": {
            "type": "object",
            "required": ["name", "level", "academic_year"],
            "properties": {
                "name": {"type": "string"},
                "level": {"type": "string", "enum": ["AF1", "AF2", "AF3", "AF4", "AF5", "AF6"]},
                "academic_year": {"type": "string"}
            }
        },
        "StudentRequest": {
            "type": "object",
            "required": ["full_name", "parent_name", "class_id"],
            "properties": {
                "rim_number": {"type": "string"},
                "full_name": {"type": "string"},
                "parent_name": {"type": "string"},
                "parent_phone": {"type": "string"},
                "class_id": {"type": "string"}
            }
        },
        "SaveScoresRequest": {
            "type": "object",
            "required": ["class_id", "entries"],
            "properties": {
                "class_id": {"type": "string"},
                "entries": {"type": "array", "items": {"$ref": "#/definitions/ScoreEntry"}}
            }
        },
        "ScoreEntry": {
            "type": "object",
            "required": ["student_id", "subject_key", "kind"],
            "properties": {
                "student_id": {"type": "string"},
                "subject_key": {"type": "string"},
                "kind": {"type": "string", "enum": ["EXERCISE", "TEST", "EXAM"]},
                "term": {"type": "integer"},
                "score": {"type": "number"}
            }
        },
        "DeleteScoresRequest": {
            "type": "object",
            "required": ["class_id", "keys"],
            "properties": {
                "class_id": {"type": "string"},
                "keys": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "student_id": {"type": "string"},
                            "subject_key": {"type": "string"},
                            "kind": {"type": "string"},
                            "term": {"type": "integer"}
                        }
                    }
                }
            }
        },
        "SaveAttendanceRequest": {
            "type": "object",
            "required": ["class_id", "date", "entries"],
            "properties": {
                "class_id": {"type": "string"},
                "date": {"type": "string", "format": "date-time"},
                "entries": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "student_id": {"type": "string"},
                            "status": {"type": "string", "enum": ["PRESENT", "ABSENT", "LATE"]},
                            "justification": {"type": "string"}
                        }
                    }
                }
            }
        },
        "TopicRequest": {
            "type": "object",
            "required": ["level", "subject_key", "topic", "week"],
            "properties": {
                "level": {"type": "string"},
                "subject_key": {"type": "string"},
                "topic": {"type": "string"},
                "week": {"type": "integer"},
                "competency": {"type": "string"}
            }
        },
        "TemplateTopic": {
            "type": "object",
            "required": ["subject_key", "topic", "week"],
            "properties": {
                "subject_key": {"type": "string"},
                "topic": {"type": "string"},
                "week": {"type": "integer"},
                "competency": {"type": "string"}
            }
        },
        "ClassProgressRequest": {
            "type": "object",
            "required": ["completed"],
            "properties": {
                "completed": {"type": "boolean"}
            }
        },
        "StudentProgressRequest": {
            "type": "object",
            "required": ["student_id", "topic_id", "status"],
            "properties": {
                "student_id": {"type": "string"},
                "topic_id": {"type": "string"},
                "status": {"type": "string", "enum": ["COMPLETED", "SKIPPED"]}
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
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        },
        "ExportJob": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "class_id": {"type": "string"},
                "status": {"type": "string", "enum": ["PENDING", "COMPLETED", "FAILED"]},
                "download_url": {"type": "string"},
                "expires_at": {"type": "string", "format": "date-time"},
                "error": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"}
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
