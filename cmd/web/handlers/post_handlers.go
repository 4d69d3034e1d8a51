package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dragons-web/cmd/internal/logger"
	"dragons-web/cmd/web/clients/backendclient"
	"dragons-web/cmd/web/dto"
	"dragons-web/cmd/web/services"
	"dragons-web/cmd/web/validation"
)

const (
	msgPostNotFound    = "게시글을 찾을 수 없습니다."
	msgPostCreated     = "게시글이 작성되었습니다!"
	msgPostUpdated     = "게시글이 수정되었습니다!"
	msgPostDeleted     = "삭제되었습니다."
	msgPostLoadFailed  = "게시글 정보를 불러오지 못했습니다."
	prefixCreateFailed = "작성 실패: "
	prefixUpdateFailed = "수정 실패: "
	prefixUpdateStatus = "수정 요청 실패 status: "
	prefixDeleteFailed = "삭제 실패: "
	prefixDeleteStatus = "삭제 요청 실패 status: "
)

// HomeHandler 는 최신 글 5개를 보여준다. 조회 실패는 로그만 남기고 빈 목록으로 그린다.
func HomeHandler(postSvc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := postSvc.Latest(c.Request.Context())
		if err != nil {
			logger.WarnWithFields("latest posts failed", requestFields(c, logger.Fields{"error": err.Error()}))
			posts = nil
		}
		render(c, http.StatusOK, "home.tmpl", gin.H{"Posts": posts})
	}
}

// PostDetailHandler 는 글 하나를 보여준다.
func PostDetailHandler(postSvc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			render(c, http.StatusNotFound, "post_detail.tmpl", gin.H{"Error": msgPostNotFound})
			return
		}

		post, err := postSvc.Get(c.Request.Context(), id)
		if err != nil {
			status, msg := http.StatusNotFound, msgPostNotFound
			if backendclient.IsNetworkError(err) {
				status, msg = http.StatusBadGateway, msgNetwork
			}
			logger.WarnWithFields("post detail failed", requestFields(c, logger.Fields{"post_id": id, "error": err.Error()}))
			render(c, status, "post_detail.tmpl", gin.H{"Error": msg})
			return
		}
		render(c, http.StatusOK, "post_detail.tmpl", gin.H{"Post": post})
	}
}

func NewPostPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, http.StatusOK, "post_new.tmpl", gin.H{
			"Categories": dto.Categories,
			"Form":       validation.PostForm{Category: dto.CategoryBackend},
		})
	}
}

// CreatePostHandler 는 글을 만들고 홈으로 보낸다. 실패하면 입력값을 유지한 채 다시 그린다.
func CreatePostHandler(postSvc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		form := validation.NewPostForm(c.PostForm("title"), c.PostForm("content"), c.PostForm("category"))

		id, err := postSvc.Create(c.Request.Context(), form)
		if err != nil {
			var msg string
			switch {
			case validation.Message(err, "") != "":
				msg = validation.Message(err, "")
			case backendclient.IsNetworkError(err):
				msg = msgNetwork
			default:
				msg = prefixCreateFailed + backendclient.Message(err, msgUnknownShort)
			}
			logger.WarnWithFields("create post failed", requestFields(c, logger.Fields{"error": err.Error()}))
			render(c, http.StatusOK, "post_new.tmpl", gin.H{
				"Categories": dto.Categories,
				"Form":       form,
				"Flash":      msg,
			})
			return
		}

		logger.InfoWithFields("post created", requestFields(c, logger.Fields{"post_id": id}))
		redirectWithFlash(c, "/", msgPostCreated)
	}
}

// EditPostPageHandler 는 수정 화면이다. 불러오지 못하면 홈으로 돌려보낸다.
func EditPostPageHandler(postSvc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			redirectWithFlash(c, "/", msgPostLoadFailed)
			return
		}
		post, err := postSvc.Get(c.Request.Context(), id)
		if err != nil {
			msg := msgPostLoadFailed
			if backendclient.IsNetworkError(err) {
				msg = msgNetwork
			}
			logger.WarnWithFields("edit post load failed", requestFields(c, logger.Fields{"post_id": id, "error": err.Error()}))
			redirectWithFlash(c, "/", msg)
			return
		}
		render(c, http.StatusOK, "post_edit.tmpl", gin.H{
			"ID":   id,
			"Form": validation.PostEditForm{Title: post.Title, Content: post.Content},
		})
	}
}

// UpdatePostHandler 는 제목과 내용만 바꾼다. 성공하면 상세 화면으로 간다.
func UpdatePostHandler(postSvc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			redirectWithFlash(c, "/", msgPostLoadFailed)
			return
		}
		form := validation.PostEditForm{
			Title:   validation.Text(c.PostForm("title")),
			Content: validation.Text(c.PostForm("content")),
		}

		if err := postSvc.Update(c.Request.Context(), id, form); err != nil {
			msg := validation.Message(err, "")
			if msg == "" {
				msg = mutationMessage(err, prefixUpdateFailed, prefixUpdateStatus)
			}
			logger.WarnWithFields("update post failed", requestFields(c, logger.Fields{"post_id": id, "error": err.Error()}))
			render(c, http.StatusOK, "post_edit.tmpl", gin.H{"ID": id, "Form": form, "Flash": msg})
			return
		}

		redirectWithFlash(c, "/posts/"+strconv.FormatInt(id, 10), msgPostUpdated)
	}
}

// DeletePostHandler 는 성공하면 홈으로, 실패하면 상세 화면으로 돌아간다.
func DeletePostHandler(postSvc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			redirectWithFlash(c, "/", msgPostNotFound)
			return
		}

		if err := postSvc.Delete(c.Request.Context(), id); err != nil {
			msg := mutationMessage(err, prefixDeleteFailed, prefixDeleteStatus)
			logger.WarnWithFields("delete post failed", requestFields(c, logger.Fields{"post_id": id, "error": err.Error()}))
			redirectWithFlash(c, "/posts/"+strconv.FormatInt(id, 10), msg)
			return
		}

		logger.InfoWithFields("post deleted", requestFields(c, logger.Fields{"post_id": id}))
		redirectWithFlash(c, "/", msgPostDeleted)
	}
}
