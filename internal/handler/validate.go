package handler

import (
	"mime/multipart"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"ProfileBoard/internal/apperror"
)

const (
	msgNameLength     = "名字请限制在 1-10 个字符"
	msgBioLength      = "个人简介请限制在 1-30 个字符"
	msgGender         = "性别只能是 m、f 或 x"
	msgPasswordEmpty  = "密码不能为空"
	msgPasswordLength = "密码至少 6 个字符"
	msgPasswordRepeat = "两次输入密码不一致"
	msgPasswordLong   = "密码不能超过 72 个字节"
	msgOldPassword    = "旧密码错误"
	msgAvatarMissing  = "缺少头像"
	msgAvatarTooLarge = "头像文件过大"
	msgAvatarFormat   = "头像仅支持 jpg、png、gif、webp 格式"
	msgNameTaken      = "用户名已被占用"
	msgUserNotFound   = "用户不存在"
	msgWrongPassword  = "用户名或密码错误"
)

const maxPasswordBytes = 72

var avatarExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// 길이는 바이트가 아닌 문자 수 기준
func checkLength(value string, min, max int, message string) (string, *apperror.ValidationError) {
	value = strings.TrimSpace(value)
	if n := utf8.RuneCountInString(value); n < min || n > max {
		return "", apperror.Validation(message)
	}
	return value, nil
}

func validateName(name string) (string, *apperror.ValidationError) {
	return checkLength(name, 1, 10, msgNameLength)
}

func validateBio(bio string) (string, *apperror.ValidationError) {
	return checkLength(bio, 1, 30, msgBioLength)
}

func validateGender(gender string) *apperror.ValidationError {
	switch gender {
	case "m", "f", "x":
		return nil
	}
	return apperror.Validation(msgGender)
}

// validateNewPassword checks the new password and its confirmation.
func validateNewPassword(password, repeat string) *apperror.ValidationError {
	if utf8.RuneCountInString(password) < 6 {
		return apperror.Validation(msgPasswordLength)
	}
	// bcrypt 입력 한도
	if len(password) > maxPasswordBytes {
		return apperror.Validation(msgPasswordLong)
	}
	if password != repeat {
		return apperror.Validation(msgPasswordRepeat)
	}
	return nil
}

func validateAvatar(file *multipart.FileHeader, maxBytes int64) *apperror.ValidationError {
	if file == nil || file.Filename == "" {
		return apperror.Validation(msgAvatarMissing)
	}
	if maxBytes > 0 && file.Size > maxBytes {
		return apperror.Validation(msgAvatarTooLarge)
	}
	if !avatarExts[strings.ToLower(filepath.Ext(file.Filename))] {
		return apperror.Validation(msgAvatarFormat)
	}
	return nil
}
