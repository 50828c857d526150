package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "School Enrollment API",
        "description": "Enrollment engine scoped to the active academic year",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {
            "name": "AcademicYears",
            "description": "Academic year lifecycle and active year selection"
        },
        {
            "name": "ClassSections",
            "description": "Class sections and capacity"
        },
        {
            "name": "FeeSchedules",
            "description": "Fees per level and academic year"
        },
        {
            "name": "Reference",
            "description": "Reference lists scoped to the active year"
        },
        {
            "name": "Enrollments",
            "description": "Enrollment lifecycle"
        },
        {
            "name": "Payments",
            "description": "Payment ledger"
        },
        {
            "name": "Observability",
            "description": "Metrics"
        }
    ],
    "paths": {
        "/academic-years": {
            "get": {
                "tags": [
                    "AcademicYears"
                ],
                "summary": "List academic years",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "AcademicYears"
                ],
                "summary": "Plan a new academic year",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateAcademicYearRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/academic-years/active": {
            "get": {
                "tags": [
                    "AcademicYears"
                ],
                "summary": "Get the active academic year",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "412": {
                        "description": "No active academic year",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "AcademicYears"
                ],
                "summary": "Switch the active academic year",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SetActiveYearRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown academic year",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/academic-years/refresh": {
            "post": {
                "tags": [
                    "AcademicYears"
                ],
                "summary": "Reload academic years from storage",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/academic-years/{id}": {
            "get": {
                "tags": [
                    "AcademicYears"
                ],
                "summary": "Get academic year",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/academic-years/{id}/status": {
            "patch": {
                "tags": [
                    "AcademicYears"
                ],
                "summary": "Move an academic year forward in its lifecycle",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/AdvanceAcademicYearRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "412": {
                        "description": "Backward transition",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/academic-years/{id}/activate": {
            "patch": {
                "tags": [
                    "AcademicYears"
                ],
                "summary": "Promote an academic year to CURRENT",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/class-sections": {
            "get": {
                "tags": [
                    "ClassSections"
                ],
                "summary": "List class sections of an academic year",
                "parameters": [
                    {
                        "name": "yearId",
                        "in": "query",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "ClassSections"
                ],
                "summary": "Create class section",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateClassSectionRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "422": {
                        "description": "No fee schedule for level and year",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/class-sections/{id}": {
            "get": {
                "tags": [
                    "ClassSections"
                ],
                "summary": "Get class section with remaining seats",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/fee-schedules": {
            "get": {
                "tags": [
                    "FeeSchedules"
                ],
                "summary": "List fee schedules of a year, or one level's schedule",
                "parameters": [
                    {
                        "name": "yearId",
                        "in": "query",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "levelId",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "422": {
                        "description": "No fee schedule for level and year",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "FeeSchedules"
                ],
                "summary": "Create fee schedule",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateFeeScheduleRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Schedule already exists",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/fee-schedules/copy-forward": {
            "post": {
                "tags": [
                    "FeeSchedules"
                ],
                "summary": "Copy fee schedules into another academic year",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CopyForwardRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/reference/classes": {
            "get": {
                "tags": [
                    "Reference"
                ],
                "summary": "Class sections of the active year with level, fees and seats",
                "parameters": [
                    {
                        "name": "excludingEnrollmentId",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/reference/available-classes": {
            "get": {
                "tags": [
                    "Reference"
                ],
                "summary": "Fee-covered class sections of the active year",
                "parameters": [
                    {
                        "name": "excludingEnrollmentId",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/reference/levels": {
            "get": {
                "tags": [
                    "Reference"
                ],
                "summary": "Levels, optionally restricted to fee coverage in a year",
                "parameters": [
                    {
                        "name": "yearId",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/reference/eligible-levels": {
            "get": {
                "tags": [
                    "Reference"
                ],
                "summary": "Levels with at least one open, fee-covered class",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/reference/previous-year": {
            "get": {
                "tags": [
                    "Reference"
                ],
                "summary": "Academic year preceding the active one",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "No previous year",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/reference/reload": {
            "post": {
                "tags": [
                    "Reference"
                ],
                "summary": "Rebuild the reference data of the active year",
                "responses": {
                    "204": {
                        "description": "Reloaded"
                    },
                    "409": {
                        "description": "Active year changed during reload",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/enrollments": {
            "get": {
                "tags": [
                    "Enrollments"
                ],
                "summary": "List enrollments",
                "parameters": [
                    {
                        "name": "studentId",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "classSectionId",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "yearId",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "sort",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "order",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Enrollments"
                ],
                "summary": "Enroll student in a class of the active year",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateEnrollmentRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Class full or student already enrolled",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "412": {
                        "description": "No active academic year",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "422": {
                        "description": "No fee schedule for level and year",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/enrollments/renew": {
            "post": {
                "tags": [
                    "Enrollments"
                ],
                "summary": "Re-enroll a returning student",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/RenewEnrollmentRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/enrollments/export": {
            "get": {
                "tags": [
                    "Enrollments"
                ],
                "summary": "Export the enrollment roster of a year as CSV",
                "produces": [
                    "text/csv"
                ],
                "parameters": [
                    {
                        "name": "yearId",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "CSV file",
                        "schema": {
                            "type": "file"
                        }
                    }
                }
            }
        },
        "/enrollments/{id}": {
            "get": {
                "tags": [
                    "Enrollments"
                ],
                "summary": "Get enrollment",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Enrollments"
                ],
                "summary": "Edit enrollment",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/EditEnrollmentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Target class full",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/enrollments/{id}/renewal-suggestion": {
            "get": {
                "tags": [
                    "Enrollments"
                ],
                "summary": "Suggest the class for renewing an enrollment",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "yearId",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/enrollments/{id}/cancel": {
            "post": {
                "tags": [
                    "Enrollments"
                ],
                "summary": "Withdraw enrollment",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": false,
                        "schema": {
                            "$ref": "#/definitions/StatusChangeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/enrollments/{id}/transfer": {
            "post": {
                "tags": [
                    "Enrollments"
                ],
                "summary": "Mark enrollment as transferred out",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": false,
                        "schema": {
                            "$ref": "#/definitions/StatusChangeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "412": {
                        "description": "Enrollment holds no seat",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/enrollments/{id}/statement": {
            "get": {
                "tags": [
                    "Enrollments"
                ],
                "summary": "Financial statement of an enrollment",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/enrollments/{id}/payments": {
            "get": {
                "tags": [
                    "Payments"
                ],
                "summary": "List payments of an enrollment",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Payments"
                ],
                "summary": "Record a payment",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/RecordPaymentRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/metrics/summary": {
            "get": {
                "tags": [
                    "Observability"
                ],
                "summary": "Engine counters",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "CreateAcademicYearRequest": {
            "type": "object",
            "properties": {
                "label": {
                    "type": "string"
                },
                "start_date": {
                    "type": "string",
                    "format": "date-time"
                },
                "end_date": {
                    "type": "string",
                    "format": "date-time"
                }
            },
            "required": [
                "label",
                "start_date",
                "end_date"
            ]
        },
        "AdvanceAcademicYearRequest": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string",
                    "enum": [
                        "CURRENT",
                        "FINISHED",
                        "ARCHIVED"
                    ]
                }
            },
            "required": [
                "status"
            ]
        },
        "SetActiveYearRequest": {
            "type": "object",
            "properties": {
                "academic_year_id": {
                    "type": "string"
                }
            },
            "required": [
                "academic_year_id"
            ]
        },
        "CreateClassSectionRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "level_id": {
                    "type": "string"
                },
                "academic_year_id": {
                    "type": "string"
                },
                "capacity": {
                    "type": "integer"
                },
                "homeroom_teacher_id": {
                    "type": "string"
                },
                "supervisor_id": {
                    "type": "string"
                }
            },
            "required": [
                "name",
                "level_id",
                "academic_year_id",
                "capacity"
            ]
        },
        "CreateFeeScheduleRequest": {
            "type": "object",
            "properties": {
                "level_id": {
                    "type": "string"
                },
                "academic_year_id": {
                    "type": "string"
                },
                "tuition_amount": {
                    "type": "string",
                    "format": "decimal"
                },
                "registration_fee": {
                    "type": "string",
                    "format": "decimal"
                },
                "file_fee": {
                    "type": "string",
                    "format": "decimal"
                }
            },
            "required": [
                "level_id",
                "academic_year_id",
                "tuition_amount",
                "registration_fee"
            ]
        },
        "CopyForwardRequest": {
            "type": "object",
            "properties": {
                "from_academic_year_id": {
                    "type": "string"
                },
                "to_academic_year_id": {
                    "type": "string"
                }
            },
            "required": [
                "to_academic_year_id"
            ]
        },
        "CreateEnrollmentRequest": {
            "type": "object",
            "properties": {
                "student_id": {
                    "type": "string"
                },
                "class_section_id": {
                    "type": "string"
                },
                "academic_year_id": {
                    "type": "string"
                },
                "enrollment_date": {
                    "type": "string",
                    "format": "date-time"
                },
                "registration_fee": {
                    "type": "string",
                    "format": "decimal"
                },
                "tuition_fee": {
                    "type": "string",
                    "format": "decimal"
                },
                "discount": {
                    "type": "string",
                    "format": "decimal"
                },
                "payment_plan": {
                    "type": "string",
                    "enum": [
                        "MONTHLY",
                        "QUARTERLY",
                        "ANNUAL"
                    ]
                }
            },
            "required": [
                "student_id",
                "class_section_id"
            ]
        },
        "RenewEnrollmentRequest": {
            "type": "object",
            "properties": {
                "prior_enrollment_id": {
                    "type": "string"
                },
                "student_id": {
                    "type": "string"
                },
                "class_section_id": {
                    "type": "string"
                },
                "academic_year_id": {
                    "type": "string"
                },
                "enrollment_date": {
                    "type": "string",
                    "format": "date-time"
                },
                "registration_fee": {
                    "type": "string",
                    "format": "decimal"
                },
                "tuition_fee": {
                    "type": "string",
                    "format": "decimal"
                },
                "discount": {
                    "type": "string",
                    "format": "decimal"
                },
                "payment_plan": {
                    "type": "string"
                }
            },
            "required": [
                "prior_enrollment_id",
                "student_id",
                "class_section_id"
            ]
        },
        "EditEnrollmentRequest": {
            "type": "object",
            "properties": {
                "class_section_id": {
                    "type": "string"
                },
                "enrollment_date": {
                    "type": "string",
                    "format": "date-time"
                },
                "registration_fee": {
                    "type": "string",
                    "format": "decimal"
                },
                "tuition_fee": {
                    "type": "string",
                    "format": "decimal"
                },
                "discount": {
                    "type": "string",
                    "format": "decimal"
                },
                "payment_plan": {
                    "type": "string"
                }
            }
        },
        "StatusChangeRequest": {
            "type": "object",
            "properties": {
                "reason": {
                    "type": "string"
                }
            }
        },
        "RecordPaymentRequest": {
            "type": "object",
            "properties": {
                "amount": {
                    "type": "string",
                    "format": "decimal"
                },
                "date": {
                    "type": "string",
                    "format": "date-time"
                }
            },
            "required": [
                "amount"
            ]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {
                    "type": "integer"
                },
                "page_size": {
                    "type": "integer"
                },
                "total_count": {
                    "type": "integer"
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "pagination": {
                    "$ref": "#/definitions/Pagination"
                },
                "meta": {
                    "type": "object"
                }
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
