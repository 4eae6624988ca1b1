// Package docs registers the OpenAPI description served at /swagger.
// Regenerate with `swag init -g cmd/api/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "summary": "헬스 체크",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/signin": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["Auth"],
                "summary": "로그인 (Signin)",
                "parameters": [
                    {"type": "string", "description": "사용자명", "name": "name", "in": "formData", "required": true},
                    {"type": "string", "description": "비밀번호", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "302": {"description": "성공 시 /user, 실패 시 /signin 으로 리다이렉트"},
                    "429": {"description": "요청 과다"},
                    "500": {"description": "서버 오류 페이지"}
                }
            }
        },
        "/signout": {
            "get": {
                "tags": ["Auth"],
                "summary": "로그아웃 (Signout)",
                "responses": {
                    "302": {"description": "/signin 으로 리다이렉트"}
                }
            }
        },
        "/signup": {
            "post": {
                "consumes": ["multipart/form-data"],
                "tags": ["Auth"],
                "summary": "회원가입 (Signup)",
                "parameters": [
                    {"type": "string", "description": "사용자명 (1-10자)", "name": "name", "in": "formData", "required": true},
                    {"type": "string", "description": "비밀번호 (6자 이상)", "name": "password", "in": "formData", "required": true},
                    {"type": "string", "description": "비밀번호 확인", "name": "rePassword", "in": "formData", "required": true},
                    {"type": "string", "description": "성별 (m, f, x)", "name": "gender", "in": "formData", "required": true},
                    {"type": "string", "description": "자기소개 (1-30자)", "name": "bio", "in": "formData", "required": true},
                    {"type": "file", "description": "아바타 이미지", "name": "avatar", "in": "formData", "required": true},
                    {"type": "string", "description": "초대 코드 (설정된 경우)", "name": "inviteCode", "in": "formData"}
                ],
                "responses": {
                    "302": {"description": "성공 시 /user, 실패 시 /signup 으로 리다이렉트"},
                    "429": {"description": "요청 과다"},
                    "500": {"description": "서버 오류 페이지"}
                }
            }
        },
        "/user": {
            "get": {
                "produces": ["text/html"],
                "tags": ["User"],
                "summary": "프로필 조회",
                "responses": {
                    "200": {"description": "프로필 페이지"},
                    "302": {"description": "로그인되지 않음, /signin 으로 이동"},
                    "500": {"description": "서버 오류 페이지"}
                }
            }
        },
        "/user/avatar": {
            "post": {
                "consumes": ["multipart/form-data"],
                "tags": ["User"],
                "summary": "아바타 변경",
                "parameters": [
                    {"type": "file", "description": "아바타 이미지 (jpg, png, gif, webp)", "name": "avatar", "in": "formData", "required": true}
                ],
                "responses": {
                    "302": {"description": "/user 로 리다이렉트"},
                    "500": {"description": "서버 오류 페이지"}
                }
            }
        },
        "/user/bio": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["User"],
                "summary": "자기소개 변경",
                "parameters": [
                    {"type": "string", "description": "자기소개 (1-30자)", "name": "bio", "in": "formData", "required": true}
                ],
                "responses": {
                    "302": {"description": "/user 로 리다이렉트"},
                    "500": {"description": "서버 오류 페이지"}
                }
            }
        },
        "/user/name": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["User"],
                "summary": "사용자명 변경",
                "parameters": [
                    {"type": "string", "description": "새 사용자명 (1-10자)", "name": "name", "in": "formData", "required": true}
                ],
                "responses": {
                    "302": {"description": "/user 로 리다이렉트"},
                    "500": {"description": "서버 오류 페이지"}
                }
            }
        },
        "/user/password": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["User"],
                "summary": "비밀번호 변경",
                "parameters": [
                    {"type": "string", "description": "기존 비밀번호", "name": "oldPassword", "in": "formData", "required": true},
                    {"type": "string", "description": "새 비밀번호 (6자 이상)", "name": "newPassword", "in": "formData", "required": true},
                    {"type": "string", "description": "새 비밀번호 확인", "name": "rePassword", "in": "formData", "required": true}
                ],
                "responses": {
                    "302": {"description": "/user 로 리다이렉트"},
                    "500": {"description": "서버 오류 페이지"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "ProfileBoard API",
	Description:      "로그인 사용자의 프로필 조회 및 수정",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
